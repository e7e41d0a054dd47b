// Package route classifies navigation paths for the gate.
package route

import (
	"fmt"
	"slices"
	"strings"
)

// Class is the gating class of a path.
type Class int

const (
	Unclassified Class = iota
	Protected
	Public
)

func (c Class) String() string {
	switch c {
	case Protected:
		return "protected"
	case Public:
		return "public"
	default:
		return "unclassified"
	}
}

// Default path sets. Detail pages (products, brands, categories) are
// deliberately absent and stay Unclassified.
var (
	DefaultProtected = []string{"/home", "/cart", "/cart/checkout", "/wishlist", "/allorders", "/user"}
	DefaultPublic    = []string{"/", "/login", "/signup"}
)

// Classifier is an immutable exact-match path table.
type Classifier struct {
	classes map[string]Class
}

// New builds a classifier. A path present in both sets is a configuration
// error.
func New(protected, public []string) (*Classifier, error) {
	classes := make(map[string]Class, len(protected)+len(public))
	for _, p := range protected {
		classes[Normalize(p)] = Protected
	}
	var overlap []string
	for _, p := range public {
		n := Normalize(p)
		if classes[n] == Protected {
			overlap = append(overlap, n)
			continue
		}
		classes[n] = Public
	}
	if len(overlap) > 0 {
		slices.Sort(overlap)
		return nil, fmt.Errorf("paths both protected and public: %s", strings.Join(overlap, ", "))
	}
	return &Classifier{classes: classes}, nil
}

// Default returns the storefront's route table.
func Default() *Classifier {
	c, err := New(DefaultProtected, DefaultPublic)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the class of path after normalisation. Prefixes never
// match: /cart/checkout is listed on its own.
func (c *Classifier) Classify(path string) Class {
	return c.classes[Normalize(path)]
}

// Normalize strips trailing slashes ("/cart/" is "/cart") and keeps the
// root as "/".
func Normalize(path string) string {
	if path == "" {
		return "/"
	}
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return trimmed
}
