package core

import "backoffice/internal/model/core"

// TransposeTranslations 按翻译键分组，每组合并为 language_code -> value
// 输出顺序为各键首次出现的顺序，同键同语言重复时保留后出现的值
func TransposeTranslations(rows []core.Translate) []core.TranslateTransposed {
	out := make([]core.TranslateTransposed, 0)
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.TranslateKey]
		if !ok {
			i = len(out)
			index[r.TranslateKey] = i
			out = append(out, core.TranslateTransposed{
				TranslateKey: r.TranslateKey,
				Module:       r.Module,
				Translations: make(map[string]string),
			})
		}
		out[i].Translations[r.LanguageCode] = r.TranslateValue
	}
	return out
}

type dictKey struct {
	code  string
	value string
}

// TransposeDictData 按 编码+键值 分组，每组合并为 language_code -> label
// 组的排序值取组内最小值，输出顺序为首次出现的顺序
func TransposeDictData(rows []core.DictData) []core.DictDataTransposed {
	out := make([]core.DictDataTransposed, 0)
	index := make(map[dictKey]int)
	for _, r := range rows {
		k := dictKey{code: r.DictCode, value: r.DictValue}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, core.DictDataTransposed{
				DictCode:  r.DictCode,
				DictValue: r.DictValue,
				Sort:      r.Sort,
				Labels:    make(map[string]string),
			})
		}
		if r.Sort < out[i].Sort {
			out[i].Sort = r.Sort
		}
		out[i].Labels[r.LanguageCode] = r.DictLabel
	}
	return out
}
