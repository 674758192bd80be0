/**
 * 路由:基础数据路由
 * @date: 2026.03.20
 * @description: 参数配置、字典类型、字典数据、语言、翻译
 * @func:
 */
package router

import (
	"backoffice/internal/model/system"

	"github.com/gin-gonic/gin"
)

const moduleCore = "core"

// setupCoreRoutes 设置基础数据路由
func (r *Router) setupCoreRoutes(authed *gin.RouterGroup) {
	m := r.modules.Core
	core := authed.Group("/" + moduleCore)

	config := r.registerCRUD(core, moduleCore, "config", m.ConfigHandler)
	config.GET("/key/:key", r.perm(moduleCore, "config", system.ActionQuery), m.ConfigHandler.GetValue)

	r.registerCRUD(core, moduleCore, "dicttype", m.DictTypeHandler)

	dictData := r.registerCRUD(core, moduleCore, "dictdata", m.DictDataHandler)
	dictData.GET("/code/:code", r.perm(moduleCore, "dictdata", system.ActionList), m.DictDataHandler.ListByCode)
	dictData.GET("/transpose", r.perm(moduleCore, "dictdata", system.ActionList), m.DictDataHandler.Transpose)

	language := r.registerCRUD(core, moduleCore, "language", m.LanguageHandler)
	language.GET("/default", r.perm(moduleCore, "language", system.ActionQuery), m.LanguageHandler.GetDefault)
	language.PUT("/:id/default", r.perm(moduleCore, "language", system.ActionEdit), m.LanguageHandler.SetDefault)

	translate := r.registerCRUD(core, moduleCore, "translate", m.TranslateHandler)
	translate.GET("/transpose", r.perm(moduleCore, "translate", system.ActionList), m.TranslateHandler.Transpose)
}
