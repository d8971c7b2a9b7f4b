package plugin

// flexsearch settings used when search indexing is enabled.
var flexsearchDefaults = map[string]any{"index": "content", "tokenize": "forward", "version": "0.8.143"}

// ApplyParams writes the theme parameters into the params section of hugo.yaml.
// Values already present in params are kept.
func (p *DocsPlugin) ApplyParams(params map[string]any) {
	if p.search {
		search, _ := params["search"].(map[string]any)
		if search == nil {
			search = map[string]any{}
			params["search"] = search
		}
		search["enable"] = true
		if _, ok := search["type"]; !ok {
			search["type"] = "flexsearch"
		}
		if _, ok := search["flexsearch"]; !ok {
			fs := make(map[string]any, len(flexsearchDefaults))
			for k, v := range flexsearchDefaults {
				fs[k] = v
			}
			search["flexsearch"] = fs
		}
	} else {
		// No index is generated or bundled, so nothing search related may remain.
		params["search"] = map[string]any{"enable": false}
	}

	if _, ok := params["theme"].(map[string]any); !ok {
		params["theme"] = map[string]any{"default": "system", "displayToggle": true}
	}
	if _, ok := params["navbar"].(map[string]any); !ok {
		params["navbar"] = map[string]any{"displayTitle": true, "displayLogo": false, "width": "normal"}
	}
	if _, ok := params["editURL"]; !ok {
		params["editURL"] = map[string]any{"enable": false}
	}
}

// MainMenu returns the navbar entries. The search box entry is only present
// when search is enabled.
func (p *DocsPlugin) MainMenu() []map[string]any {
	var menu []map[string]any
	if p.search {
		menu = append(menu, map[string]any{"name": "Search", "weight": 4, "params": map[string]any{"type": "search"}})
	}
	menu = append(menu, map[string]any{"name": "Theme", "weight": 98, "params": map[string]any{"type": "theme-toggle", "label": false}})
	return menu
}
