/**
 * 路由:业务模块路由
 * @date: 2026.03.20
 * @description: 人事(岗位、员工)与物流(仓库、物料)，只有通用实体接口
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

const (
	moduleHR        = "hr"
	moduleLogistics = "logistics"
)

// setupHRRoutes 设置人事模块路由
func (r *Router) setupHRRoutes(authed *gin.RouterGroup) {
	hr := authed.Group("/" + moduleHR)
	r.registerCRUD(hr, moduleHR, "position", r.modules.HR.PositionHandler)
	r.registerCRUD(hr, moduleHR, "employee", r.modules.HR.EmployeeHandler)
}

// setupLogisticsRoutes 设置物流模块路由
func (r *Router) setupLogisticsRoutes(authed *gin.RouterGroup) {
	lg := authed.Group("/" + moduleLogistics)
	r.registerCRUD(lg, moduleLogistics, "warehouse", r.modules.Logistics.WarehouseHandler)
	r.registerCRUD(lg, moduleLogistics, "material", r.modules.Logistics.MaterialHandler)
}
