package view_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspire-executive/frontdesk/internal/view"
	"github.com/aspire-executive/frontdesk/internal/widget"
)

func TestEngine_RenderPages(t *testing.T) {
	engine, err := view.NewEngine(view.DefaultSite())
	require.NoError(t, err)

	for _, page := range []string{"home", "ai_receptionist"} {
		rec := httptest.NewRecorder()
		require.NoError(t, engine.Render(rec, page, "Aspire"))

		body := rec.Body.String()
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, body, `data-endpoint="/api/contact"`, page)
		assert.Contains(t, body, "https://calendly.com/scott-owen-aspire/ai-receptionist-demo", page)
	}
}

func TestEngine_UnknownPage(t *testing.T) {
	engine, err := view.NewEngine(view.DefaultSite())
	require.NoError(t, err)

	err = engine.Render(httptest.NewRecorder(), "pricing-v7", "x")
	assert.Error(t, err)
}

func TestEngine_ScriptRegisteredOnce(t *testing.T) {
	engine, err := view.NewEngine(view.DefaultSite())
	require.NoError(t, err)

	loader := widget.NewChatLoader()
	assert.True(t, engine.AddScript(loader.Script()))
	assert.False(t, engine.AddScript(loader.Script()))

	rec := httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "home", "Aspire"))

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, `id="leadconnector-chatbot"`))
	assert.Contains(t, body, `data-widget-id="68de330a0160d118b515f4b6"`)
	assert.Contains(t, body, `data-resources-url="https://widgets.leadconnectorhq.com/chat-widget/loader.js"`)
}

func TestEngine_BackendURLTrailingSlash(t *testing.T) {
	site := view.DefaultSite()
	site.BackendURL = "https://api.aspire.example/"
	engine, err := view.NewEngine(site)
	require.NoError(t, err)

	assert.Equal(t, "https://api.aspire.example", engine.Site().BackendURL)

	rec := httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "home", "Aspire"))
	assert.Contains(t, rec.Body.String(), `data-endpoint="https://api.aspire.example/api/contact"`)
}

func TestSite_BackendOrigin(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"", ""},
		{"/backend", ""},
		{"https://api.aspire.example", "https://api.aspire.example"},
		{"http://localhost:8001/v1", "http://localhost:8001"},
	}
	for _, tt := range tests {
		site := view.Site{BackendURL: tt.backend}
		assert.Equal(t, tt.want, site.BackendOrigin(), tt.backend)
	}
}
