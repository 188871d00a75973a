package ioplugin

import (
	"testing"

	"github.com/jhodges10/tlRender/perrors"
	"github.com/jhodges10/tlRender/pixel"
)

type fakePlugin struct {
	name string
	exts []string
}

func (p fakePlugin) Name() string              { return p.name }
func (p fakePlugin) Extensions() []string      { return p.exts }
func (p fakePlugin) WritePixelTypes() []string { return nil }
func (p fakePlugin) WriteAlignment(pixel.PixelType) int { return 1 }
func (p fakePlugin) WriteEndian() bool                  { return false }
func (p fakePlugin) Write(path string, info pixel.Info, opts Options) error {
	return nil
}
func (p fakePlugin) Read(path string, opts Options) (Reader, error) {
	return nil, nil
}

func TestRegistryExtensionLookupIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(fakePlugin{name: "mov", exts: []string{".mov", ".mp4"}})

	if _, ok := r.PluginFor("clip.MOV"); !ok {
		t.Fatal("expected case-insensitive match for .MOV")
	}
	if _, ok := r.PluginFor("clip.mp4"); !ok {
		t.Fatal("expected match for .mp4")
	}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	r := NewRegistry()
	r.Register(fakePlugin{name: "first", exts: []string{".png"}})
	r.Register(fakePlugin{name: "second", exts: []string{".png"}})

	p, ok := r.PluginFor("a.png")
	if !ok || p.Name() != "first" {
		t.Fatalf("expected first-registered plugin to win, got %v", p)
	}
}

func TestRegistryOpenUnsupportedExtension(t *testing.T) {
	r := NewRegistry()
	_, err := r.Open("a.xyz", nil)
	if !perrors.IsOpenError(err) {
		t.Fatalf("expected OpenError for unsupported extension, got %v", err)
	}
}
