package system

import (
	"context"
	"sort"

	"backoffice/internal/model/system"
	"backoffice/internal/pkg/query"
	"backoffice/internal/repo/mysql"
)

// treeNode 部门与菜单树共用的节点访问方式
type treeNode interface {
	nodeID() uint64
	parentID() uint64
	sortKey() int
}

// buildTree 按 ParentID 组装树，父节点不在列表中的节点作为根
// 上级关系成环的节点(导入或直接改库造成)无法从任何根到达，取环上排序最前的节点提升为根
// 同级按 sort、id 升序
func buildTree[N treeNode](nodes []N, appendChild func(parent, child N)) []N {
	byID := make(map[uint64]N, len(nodes))
	for _, n := range nodes {
		byID[n.nodeID()] = n
	}
	sorted := make([]N, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].sortKey() != sorted[j].sortKey() {
			return sorted[i].sortKey() < sorted[j].sortKey()
		}
		return sorted[i].nodeID() < sorted[j].nodeID()
	})

	attached := make(map[uint64]bool, len(nodes))
	children := make(map[uint64][]uint64, len(nodes))
	for _, n := range sorted {
		if _, ok := byID[n.parentID()]; ok && n.parentID() != n.nodeID() {
			attached[n.nodeID()] = true
			children[n.parentID()] = append(children[n.parentID()], n.nodeID())
		}
	}
	reached := make(map[uint64]bool, len(nodes))
	var mark func(id uint64)
	mark = func(id uint64) {
		if reached[id] {
			return
		}
		reached[id] = true
		for _, c := range children[id] {
			mark(c)
		}
	}
	for _, n := range sorted {
		if !attached[n.nodeID()] {
			mark(n.nodeID())
		}
	}
	for _, n := range sorted {
		if reached[n.nodeID()] {
			continue
		}
		attached[n.nodeID()] = false
		mark(n.nodeID())
	}

	roots := make([]N, 0)
	for _, n := range sorted {
		if attached[n.nodeID()] {
			appendChild(byID[n.parentID()], n)
			continue
		}
		roots = append(roots, n)
	}
	return roots
}

type deptNode struct{ *system.DeptNode }

func (n deptNode) nodeID() uint64   { return n.ID }
func (n deptNode) parentID() uint64 { return n.ParentID }
func (n deptNode) sortKey() int     { return n.Sort }

type menuNode struct{ *system.MenuNode }

func (n menuNode) nodeID() uint64   { return n.ID }
func (n menuNode) parentID() uint64 { return n.ParentID }
func (n menuNode) sortKey() int     { return n.Sort }

// DeptTree 部门列表转为树
func DeptTree(depts []system.Dept) []*system.DeptNode {
	nodes := make([]deptNode, len(depts))
	for i := range depts {
		nodes[i] = deptNode{&system.DeptNode{Dept: depts[i], Children: make([]*system.DeptNode, 0)}}
	}
	roots := buildTree(nodes, func(parent, child deptNode) {
		parent.Children = append(parent.Children, child.DeptNode)
	})
	out := make([]*system.DeptNode, len(roots))
	for i, r := range roots {
		out[i] = r.DeptNode
	}
	return out
}

// MenuTree 菜单列表转为树
func MenuTree(menus []system.Menu) []*system.MenuNode {
	nodes := make([]menuNode, len(menus))
	for i := range menus {
		nodes[i] = menuNode{&system.MenuNode{Menu: menus[i], Children: make([]*system.MenuNode, 0)}}
	}
	roots := buildTree(nodes, func(parent, child menuNode) {
		parent.Children = append(parent.Children, child.MenuNode)
	})
	out := make([]*system.MenuNode, len(roots))
	for i, r := range roots {
		out[i] = r.MenuNode
	}
	return out
}

// checkParent 校验上级节点：存在、不是自身、不是自身的下级
func checkParent[T any](ctx context.Context, repo *mysql.Repository[T], entity string, id, parentID uint64, parentOf func(*T) uint64) error {
	if parentID == 0 {
		return nil
	}
	if parentID == id {
		return system.NewValidationError("parent_id", "上级不能是自身")
	}
	// 沿上级链向上，遇到自身即成环
	seen := map[uint64]bool{}
	for cur := parentID; cur != 0; {
		if seen[cur] {
			break
		}
		seen[cur] = true
		node, err := repo.GetByID(ctx, cur)
		if err != nil {
			return err
		}
		if node == nil {
			if cur == parentID {
				return system.NewValidationError("parent_id", "上级"+entity+"不存在")
			}
			break
		}
		next := parentOf(node)
		if id != 0 && next == id {
			return system.NewValidationError("parent_id", "上级不能是自身的下级")
		}
		cur = next
	}
	return nil
}

// checkNoChildren 存在下级节点时拒绝删除
func checkNoChildren[T any](ctx context.Context, repo *mysql.Repository[T], entity string, id uint64) error {
	n, err := repo.Count(ctx, query.Where().Eq("parent_id", id))
	if err != nil {
		return err
	}
	if n > 0 {
		return system.NewValidationError("parent_id", "存在下级"+entity+"，不能删除")
	}
	return nil
}
