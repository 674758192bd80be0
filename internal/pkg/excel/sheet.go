/**
 * 工具类:Excel 导入导出
 * @date: 2026.03.08
 * @description: 以显式列清单描述一张表，负责导出、生成导入模板和读取导入文件
 * @func:
 *	1.Write 导出数据(表头加数据行)
 *	2.Template 仅生成可导入列的表头
 *	3.Read 按表头名称匹配列并解析为导入行
 */
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"backoffice/internal/model"

	"github.com/xuri/excelize/v2"
)

// ContentType xlsx 文件的 MIME 类型
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrEmptyFile 文件中没有工作表或没有表头
var ErrEmptyFile = errors.New("excel file has no header row")

// Column 一列的定义
// Value 为空的列不导出，Parse 为空的列不出现在导入模板中，导入时也忽略
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(*T) interface{}
	Parse  func(*T, string) error
}

// Sheet 一张表的列清单
type Sheet[T any] struct {
	Name    string
	Columns []Column[T]
}

// Write 导出 items，第一行为表头
func (s Sheet[T]) Write(w io.Writer, items []T) error {
	cols := make([]Column[T], 0, len(s.Columns))
	for _, c := range s.Columns {
		if c.Value != nil {
			cols = append(cols, c)
		}
	}
	return s.write(w, cols, func(sw *excelize.StreamWriter) error {
		for i := range items {
			row := make([]interface{}, len(cols))
			for j, c := range cols {
				row[j] = c.Value(&items[i])
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := sw.SetRow(cell, row); err != nil {
				return fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
		return nil
	})
}

// Template 生成导入模板，只包含可导入列
func (s Sheet[T]) Template(w io.Writer) error {
	return s.write(w, s.importColumns(), nil)
}

// Read 读取第一张工作表，返回每个非空数据行
// 单元格解析失败时该行的 Err 非空，由调用方计入导入失败
func (s Sheet[T]) Read(r io.Reader) ([]model.ImportRow[T], error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	// 表头名称 -> 列下标
	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	cols := s.importColumns()
	positions := make([]int, len(cols))
	matched := 0
	for i, c := range cols {
		pos, ok := index[c.Header]
		if !ok {
			positions[i] = -1
			continue
		}
		positions[i] = pos
		matched++
	}
	if matched == 0 {
		return nil, fmt.Errorf("%w: none of the expected columns found", ErrEmptyFile)
	}

	result := make([]model.ImportRow[T], 0, len(rows)-1)
	for line := 1; line < len(rows); line++ {
		row := rows[line]
		if blank(row) {
			continue
		}
		item := model.ImportRow[T]{Line: line}
		for i, c := range cols {
			pos := positions[i]
			if pos < 0 || pos >= len(row) {
				continue
			}
			if err := c.Parse(&item.Data, strings.TrimSpace(row[pos])); err != nil {
				item.Err = fmt.Errorf("%s: %w", c.Header, err)
				break
			}
		}
		result = append(result, item)
	}
	return result, nil
}

func (s Sheet[T]) importColumns() []Column[T] {
	cols := make([]Column[T], 0, len(s.Columns))
	for _, c := range s.Columns {
		if c.Parse != nil {
			cols = append(cols, c)
		}
	}
	return cols
}

// write 创建单表文件，写入表头后交给 body 写数据行
func (s Sheet[T]) write(w io.Writer, cols []Column[T], body func(sw *excelize.StreamWriter) error) error {
	f := excelize.NewFile()
	defer f.Close()

	name := s.Name
	if name == "" {
		name = "Sheet1"
	}
	if name != "Sheet1" {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}
	// 列宽必须在写行之前设置
	for i, c := range cols {
		if c.Width > 0 {
			if err := sw.SetColWidth(i+1, i+1, c.Width); err != nil {
				return fmt.Errorf("set column width: %w", err)
			}
		}
	}
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: c.Header}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if body != nil {
		if err := body(sw); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	return f.Write(w)
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
