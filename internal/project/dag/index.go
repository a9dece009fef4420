package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"shoumei/internal/project"
	"shoumei/internal/source"
)

type ModuleID uint32

type ModuleIndex struct {
	NameToID map[string]ModuleID // ключ: ModulePath.Key()
	IDToPath []source.ModulePath
}

// Name returns the display path of id.
func (idx ModuleIndex) Name(id ModuleID) string {
	return idx.IDToPath[int(id)].String()
}

// Lookup returns the id of path.
func (idx ModuleIndex) Lookup(path source.ModulePath) (ModuleID, bool) {
	id, ok := idx.NameToID[path.Key()]
	return id, ok
}

// собрать уникальные пути (модули и их импорты), отсортировать, раздать ID по порядку
func BuildIndex(metas []project.ModuleMeta) ModuleIndex {
	uniq := make(map[string]source.ModulePath, len(metas))
	for _, meta := range metas {
		if len(meta.Path) != 0 {
			uniq[meta.Path.Key()] = meta.Path
		}
		for _, dep := range meta.Imports {
			if len(dep.Path) == 0 {
				continue
			}
			uniq[dep.Path.Key()] = dep.Path
		}
	}

	paths := make([]source.ModulePath, 0, len(uniq))
	for _, path := range uniq {
		paths = append(paths, path)
	}
	slices.SortFunc(paths, source.ModulePath.Compare)

	nameToID := make(map[string]ModuleID, len(paths))
	for i, path := range paths {
		nameToID[path.Key()] = toID(i)
	}

	return ModuleIndex{
		NameToID: nameToID,
		IDToPath: paths,
	}
}

func toID(i int) ModuleID {
	id, err := safecast.Conv[ModuleID](i)
	if err != nil {
		panic(fmt.Errorf("module id overflow: %w", err))
	}
	return id
}
