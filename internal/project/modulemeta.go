package project

import (
	"shoumei/internal/source"
)

type ImportMeta struct {
	Path  source.ModulePath
	Range source.Range
}

// ModuleMeta describes one loaded module for graph building.
type ModuleMeta struct {
	Path        source.ModulePath
	Imports     []ImportMeta // в порядке исходника, без повторов
	ContentHash Digest       // хеш содержимого файла
	ModuleHash  Digest       // агрегированный хеш модуля с учётом зависимостей
}

// ImportPaths returns the imported module paths.
func (m ModuleMeta) ImportPaths() []source.ModulePath {
	out := make([]source.ModulePath, len(m.Imports))
	for i, imp := range m.Imports {
		out[i] = imp.Path
	}
	return out
}
