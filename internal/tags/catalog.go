package tags

import (
	"sort"

	"github.com/emprendia/emprendia-backend/pkg/textutil"
)

// Curated suggestions shown in the product form. Keys are category names as
// displayed; lookups normalize both sides.
var byCategory = map[string][]string{
	"Comida":     {"casero", "postres", "saludable", "vegano", "sin gluten", "por encargo"},
	"Bebidas":    {"café", "jugos", "artesanal", "cocteles"},
	"Moda":       {"hecho a mano", "sostenible", "tallas grandes", "infantil", "accesorios"},
	"Servicios":  {"a domicilio", "agendado", "express", "garantía"},
	"Tecnología": {"reparación", "desarrollo", "soporte", "gadgets"},
	"Hogar":      {"decoración", "muebles", "limpieza", "jardín"},
	"Salud":      {"bienestar", "terapias", "nutrición", "fitness"},
	"Educación":  {"clases", "tutorías", "idiomas", "talleres"},
	"Arte":       {"ilustración", "retratos", "cerámica", "personalizado"},
	"Belleza":    {"uñas", "peluquería", "maquillaje", "cuidado de piel"},
	"Mascotas":   {"paseos", "guardería", "alimento", "accesorios"},
}

var global = []string{"nuevo", "oferta", "popular", "envío gratis", "por encargo"}

// Categories lists the categories with curated tags, sorted for stable
// output.
func Categories() []string {
	out := make([]string, 0, len(byCategory))
	for name := range byCategory {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SuggestedFor merges the category's curated tags with the global ones,
// deduplicated, curated entries first. An unknown or empty category yields
// the global tags alone.
func SuggestedFor(category string) []string {
	var curated []string
	wanted := textutil.Normalize(category)
	for name, list := range byCategory {
		if textutil.Normalize(name) == wanted {
			curated = list
			break
		}
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(curated)+len(global))
	for _, tag := range append(append([]string{}, curated...), global...) {
		key := textutil.Normalize(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}
