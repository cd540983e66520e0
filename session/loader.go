package session

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/autofix/unit"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

// defaultMarkers are project configuration files loaded alongside source
// units so the environment detector can see them
var defaultMarkers = []string{
	"go.mod", "package.json", "requirements.txt", "pyproject.toml", "manage.py", "setup.py",
}

// Loader reads a code unit collection from a location on the abstract file
// system. Unit ids are collection-relative paths.
type Loader struct {
	fs         afs.Service
	extensions map[string]bool
	markers    map[string]bool
}

// NewLoader creates a loader for the supplied source extensions; with no
// extensions it loads the languages the engine understands
func NewLoader(extensions ...string) *Loader {
	if len(extensions) == 0 {
		extensions = []string{".go", ".py", ".js", ".jsx", ".java"}
	}
	loader := &Loader{
		fs:         afs.New(),
		extensions: map[string]bool{},
		markers:    map[string]bool{},
	}
	for _, ext := range extensions {
		loader.extensions[strings.ToLower(ext)] = true
	}
	for _, marker := range defaultMarkers {
		loader.markers[marker] = true
	}
	return loader
}

// Load walks the location and returns the code units found, sorted by id
func (l *Loader) Load(ctx context.Context, location string) ([]*unit.CodeUnit, error) {
	var units []*unit.CodeUnit
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !l.matches(info.Name()) {
			return true, nil
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", info.Name(), err)
		}
		id := path.Join(parent, info.Name())
		units = append(units, unit.New(id, string(data)))
		return true, nil
	}
	if err := l.fs.Walk(ctx, location, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", location, err)
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].ID < units[j].ID
	})
	return units, nil
}

func (l *Loader) matches(name string) bool {
	if l.markers[name] {
		return true
	}
	return l.extensions[strings.ToLower(path.Ext(name))]
}
