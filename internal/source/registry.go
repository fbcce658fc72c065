package source

import "fmt"

// Names lists the adapters in registration order. Results are merged in
// this order, so it decides which duplicate wins.
var Names = []string{"btdigg", "torrentgalaxy", "yts", "torznab", "prowlarr"}

var constructors = map[string]func(SiteConfig, Deps) Source{
	"btdigg":        func(c SiteConfig, d Deps) Source { return NewBTDigg(c, d) },
	"torrentgalaxy": func(c SiteConfig, d Deps) Source { return NewTorrentGalaxy(c, d) },
	"yts":           func(c SiteConfig, d Deps) Source { return NewYTS(c, d) },
	"torznab":       func(c SiteConfig, d Deps) Source { return NewTorznab(c, d) },
	"prowlarr":      func(c SiteConfig, d Deps) Source { return NewProwlarr(c, d) },
}

// Known reports whether name is a registered adapter.
func Known(name string) bool {
	_, ok := constructors[name]
	return ok
}

// NewRegistry builds the enabled adapters in registration order.
func NewRegistry(sites map[string]SiteConfig, deps Deps) ([]Source, error) {
	for name := range sites {
		if !Known(name) {
			return nil, fmt.Errorf("unknown source %q", name)
		}
	}

	deps = deps.withDefaults()
	var sources []Source
	for _, name := range Names {
		site, ok := sites[name]
		if !ok || !site.Enabled {
			continue
		}
		sources = append(sources, constructors[name](site, deps))
	}
	deps.Log.Debug("sources registered", "component", "source", "count", len(sources))
	return sources, nil
}
