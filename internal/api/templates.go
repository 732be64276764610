package api

import (
	"fmt"
	"html/template"
	"io/fs"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// dict builds a map from alternating key/value arguments for partials.
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
		"onoff": func(b bool) string {
			if b {
				return "On"
			}
			return "Off"
		},
	}
}

// LoadTemplates parses layouts, pages and partials from fsys. Pages name
// themselves ("pages/home.html") with a define block.
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	t := template.New("base").Funcs(templateFuncs())

	patterns := []string{
		"templates/layouts/*.html",
		"templates/pages/*.html",
		"templates/partials/*.html",
	}
	for _, p := range patterns {
		if matches, _ := fs.Glob(fsys, p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseFS(fsys, p); err != nil {
			return nil, err
		}
	}

	return t, nil
}
