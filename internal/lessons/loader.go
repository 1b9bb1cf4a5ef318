package lessons

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed data/*.json
var lessonData embed.FS

func init() {
	RegisterFromFS(lessonData)
}

// RegisterFromFS loads all lesson JSON files from the "data/"
// subdirectory of the given filesystem and registers them.
func RegisterFromFS(lessonFS fs.FS) {
	entries, err := fs.ReadDir(lessonFS, "data")
	if err != nil {
		panic(fmt.Sprintf("lessons: read data dir: %v", err))
	}

	var result []*Lesson
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(lessonFS, "data/"+entry.Name())
		if err != nil {
			panic(fmt.Sprintf("lessons: load %s: %v", entry.Name(), err))
		}
		var lesson Lesson
		if err := json.Unmarshal(data, &lesson); err != nil {
			panic(fmt.Sprintf("lessons: parse %s: %v", entry.Name(), err))
		}
		result = append(result, &lesson)
	}

	Register(result)
}
