// Package widget registers the third-party chat widget script exactly once
// per process.
package widget

import "sync/atomic"

// LeadConnector chat widget defaults.
const (
	ChatScriptID     = "leadconnector-chatbot"
	ChatSrc          = "https://widgets.leadconnectorhq.com/loader.js"
	ChatResourcesURL = "https://widgets.leadconnectorhq.com/chat-widget/loader.js"
	ChatWidgetID     = "68de330a0160d118b515f4b6"
)

// Script describes an external script tag.
type Script struct {
	ID    string
	Src   string
	Attrs map[string]string
}

// Loader performs a one-shot registration guarded by a process-wide flag.
// The flag is never reset.
type Loader struct {
	script  Script
	mounted atomic.Bool
}

// NewLoader creates a Loader for script.
func NewLoader(script Script) *Loader {
	return &Loader{script: script}
}

// NewChatLoader creates the Loader for the LeadConnector chat widget.
func NewChatLoader() *Loader {
	return NewLoader(Script{
		ID:  ChatScriptID,
		Src: ChatSrc,
		Attrs: map[string]string{
			"data-resources-url": ChatResourcesURL,
			"data-widget-id":     ChatWidgetID,
		},
	})
}

// Script returns the script the loader registers.
func (l *Loader) Script() Script {
	return l.script
}

// Mount calls register with the script on the first call only and reports
// whether it did.
func (l *Loader) Mount(register func(Script)) bool {
	if !l.mounted.CompareAndSwap(false, true) {
		return false
	}
	register(l.script)
	return true
}

// Mounted reports whether Mount has run.
func (l *Loader) Mounted() bool {
	return l.mounted.Load()
}
