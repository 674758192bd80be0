package system

// 实体通用操作，权限码形如 {module}:{entity}:{action}
const (
	ActionList   = "list"
	ActionQuery  = "query"
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionRemove = "remove"
	ActionImport = "import"
	ActionExport = "export"
)

// CrudActions 增删改查实体的全部操作，按菜单按钮顺序排列
var CrudActions = []string{ActionList, ActionQuery, ActionAdd, ActionEdit, ActionRemove, ActionImport, ActionExport}

// ActionLabels 操作的显示名
var ActionLabels = map[string]string{
	ActionList:   "列表",
	ActionQuery:  "详情",
	ActionAdd:    "新增",
	ActionEdit:   "修改",
	ActionRemove: "删除",
	ActionImport: "导入",
	ActionExport: "导出",
}

// PermissionCode 拼接权限码
func PermissionCode(module, entity, action string) string {
	return module + ":" + entity + ":" + action
}
