/*
 * @date: 2026.03.21
 * @description: 数据库迁移工具入口
 * @usage:
 *   migrate up                        # 同步表结构
 *   migrate seed --file seed.yaml     # 写入初始化数据(菜单、角色、管理员等)
 *   migrate drop --force              # 删除全部表(危险操作)
 */

package main

func main() {
	Execute()
}
