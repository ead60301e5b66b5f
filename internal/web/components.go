// Package web renders the temple map page and its HTML fragments.
package web

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/starford/torii/internal/models"
	"github.com/starford/torii/internal/query"
	"github.com/starford/torii/internal/templeservice"
)

// MapSettings configures the browser map widget.
type MapSettings struct {
	CenterLat   float64 `json:"center_lat"`
	CenterLng   float64 `json:"center_lng"`
	Zoom        int     `json:"zoom"`
	TileURL     string  `json:"tile_url"`
	Attribution string  `json:"attribution"`
}

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Page renders the full map page for res. searchText refills the search box
// as the visitor typed it; res carries the lowercased term.
func Page(res *templeservice.Results, searchText string, settings MapSettings) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>Tokyo Temples</title>`,
			`<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">`,
			`<link rel="stylesheet" href="/static/app.css">`,
			`</head><body>`)
		hw.raw(`<header><h1>Tokyo Temples</h1>`,
			`<input id="search" type="search" placeholder="Search temples..." value="`)
		hw.text(searchText)
		hw.raw(`" autocomplete="off">`)
		hw.component(ctx, FilterButtons(res.State.ActiveFilter))
		hw.raw(`</header><main><aside id="results">`)
		hw.component(ctx, Results(res))
		hw.raw(`</aside><div id="map"></div></main><div id="detail"></div>`)
		hw.component(ctx, templ.JSONScript("map-settings", settings))
		hw.raw(`<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>`,
			`<script src="/static/app.js"></script>`,
			`</body></html>`)
		return hw.err
	})
}

// FilterButtons renders the mutually exclusive category controls.
func FilterButtons(active query.Filter) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<nav class="filters">`)
		for _, f := range query.Filters {
			class := "filter"
			if f == active {
				class += " active"
			}
			hw.raw(`<button type="button" class="`, class, `" data-filter="`, string(f), `">`)
			hw.text(filterLabel(f))
			hw.raw(`</button>`)
		}
		hw.raw(`</nav>`)
		return hw.err
	})
}

// Results renders the count label, the result list and the marker data the
// map script places after each swap.
func Results(res *templeservice.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<p id="count" data-count="`, fmt.Sprint(res.Count), `">`)
		hw.text(res.CountLabel)
		hw.raw(`</p><ul id="temple-list">`)
		for _, item := range res.Items {
			hw.raw(`<li class="temple type-`, string(item.Type), `" data-id="`, fmt.Sprint(item.TempleID), `">`)
			hw.raw(`<h3>`)
			hw.text(item.Name)
			hw.raw(` <span class="native">`)
			hw.text(item.NativeName)
			hw.raw(`</span></h3><p class="address">`)
			hw.text(item.Address)
			hw.raw(`</p><span class="tag">`)
			hw.text(string(item.Type))
			hw.raw(`</span></li>`)
		}
		hw.raw(`</ul>`)
		hw.component(ctx, templ.JSONScript("result-markers", res.Markers))
		return hw.err
	})
}

// Detail renders the overlay for a single record with a dismiss control.
func Detail(t models.Temple) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="overlay" data-id="`, fmt.Sprint(t.ID), `"><div class="modal">`,
			`<button type="button" class="dismiss" aria-label="Close">&times;</button><h2>`)
		hw.text(t.Name)
		hw.raw(` <span class="native">`)
		hw.text(t.NativeName)
		hw.raw(`</span></h2>`)
		section := func(title, body string) {
			hw.raw(`<section><h4>`, title, `</h4><p>`)
			hw.text(body)
			hw.raw(`</p></section>`)
		}
		section("About", t.Description)
		section("History", t.History)
		if len(t.Highlights) > 0 {
			hw.raw(`<section><h4>Highlights</h4><ul>`)
			for _, h := range t.Highlights {
				hw.raw(`<li>`)
				hw.text(h)
				hw.raw(`</li>`)
			}
			hw.raw(`</ul></section>`)
		}
		section("Address", t.Address)
		section("Best time to visit", t.BestTime)
		hw.raw(`</div></div>`)
		return hw.err
	})
}

func filterLabel(f query.Filter) string {
	s := string(f)
	return strings.ToUpper(s[:1]) + s[1:]
}
