package model

// ImportRow 待导入的一行数据
// Line 为数据行号(1 起始，不含表头)，Err 非空表示解析阶段已失败
type ImportRow[T any] struct {
	Line int
	Data T
	Err  error
}

// RowsOf 把已解析好的数据包装成导入行，行号按顺序从 1 开始
func RowsOf[T any](items []T) []ImportRow[T] {
	rows := make([]ImportRow[T], len(items))
	for i := range items {
		rows[i] = ImportRow[T]{Line: i + 1, Data: items[i]}
	}
	return rows
}
