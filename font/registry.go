// Package font owns font-file byte blobs, the fonts enumerated within them,
// and the family index, and implements CSS-Fonts-4 attribute matching over
// that index.
package font

import (
	"fmt"
	"sort"

	gotext "github.com/go-text/typesetting/font"
)

// FamilyId, FontId and DataId are small opaque integers; a value equals its
// position within the registry's corresponding list.
type FamilyId uint16

// FontId identifies a single registered face.
type FontId uint16

// DataId identifies a shared font-file blob.
type DataId uint16

// idLimit is the fatal cap on any of the three id domains (spec: 16 bits).
const idLimit = 1 << 16

// FontData is a shared, reference-counted font-file blob. Go's garbage
// collector provides the reference counting: every Font that was parsed out
// of a blob keeps that blob's byte slice reachable for as long as the
// Registry (or any FontHandle copied from it) is reachable.
type FontData struct {
	Bytes []byte
}

// Font is one registered face: a (stretch, weight, style) triple inside a
// family, plus the blob and face index it was parsed from.
type Font struct {
	ID         FontId
	FamilyID   FamilyId
	DataID     DataId
	FaceIndex  int
	Attributes Attributes
	// CacheKey is a globally unique identifier a shaper can use to key its
	// own font-level caches (e.g. harfbuzz face caches).
	CacheKey uint64
}

// FontFamily is a named collection of Fonts, sorted by weight.
type FontFamily struct {
	ID FamilyId
	// Name is the family name exactly as registered; callers normalize.
	Name string
	// HasStretch is true iff any member has a non-normal stretch.
	HasStretch bool
	// Members lists this family's FontIds, sorted ascending by weight
	// (stable for equal weights, i.e. by registration order among ties).
	Members []FontId
}

// Registry owns font blobs, fonts, and families. The zero value is ready to
// use. A Registry is not safe for concurrent registration and lookup; see
// the package doc of richlayout for the exclusivity contract of a build.
type Registry struct {
	data       []*FontData
	fonts      []Font
	families   []*FontFamily
	familyMap  map[string]FamilyId
	faces      map[FontId]gotext.Face
	nextCacheK uint64
}

// NewRegistry constructs an empty font registry.
func NewRegistry() *Registry {
	return &Registry{familyMap: make(map[string]FamilyId)}
}

// AddFonts ingests a possibly-multi-face font blob under the given family
// name, returning the number of faces accepted. Faces whose (stretch,
// weight, style) triple already exists within the family are skipped as
// duplicates. A malformed blob registers nothing and returns (0, false).
func (r *Registry) AddFonts(name string, data []byte) (int, bool) {
	faces, err := parseFaces(data)
	if err != nil || len(faces) == 0 {
		return 0, false
	}
	fam := r.familyOrCreate(name)
	var dataID DataId
	blobUsed := false
	accepted := 0
	for faceIndex, face := range faces {
		attrs := attributesOf(face)
		if r.hasAttributes(fam, attrs) {
			continue
		}
		if !blobUsed {
			if len(r.data) >= idLimit {
				panic(fmt.Sprintf("font: data id overflow, cannot register %q", name))
			}
			dataID = DataId(len(r.data))
			r.data = append(r.data, &FontData{Bytes: data})
			blobUsed = true
		}
		if len(r.fonts) >= idLimit {
			panic(fmt.Sprintf("font: font id overflow, cannot register %q", name))
		}
		id := FontId(len(r.fonts))
		r.nextCacheK++
		f := Font{
			ID:         id,
			FamilyID:   fam.ID,
			DataID:     dataID,
			FaceIndex:  faceIndex,
			Attributes: attrs,
			CacheKey:   r.nextCacheK,
		}
		r.fonts = append(r.fonts, f)
		if r.faces == nil {
			r.faces = make(map[FontId]gotext.Face)
		}
		r.faces[id] = face
		r.insertMember(fam, id, attrs)
		if attrs.Stretch != StretchNormal {
			fam.HasStretch = true
		}
		accepted++
	}
	return accepted, accepted > 0
}

func (r *Registry) familyOrCreate(name string) *FontFamily {
	if id, ok := r.familyMap[name]; ok {
		return r.families[id]
	}
	if len(r.families) >= idLimit {
		panic(fmt.Sprintf("font: family id overflow, cannot register %q", name))
	}
	id := FamilyId(len(r.families))
	fam := &FontFamily{ID: id, Name: name}
	r.families = append(r.families, fam)
	if r.familyMap == nil {
		r.familyMap = make(map[string]FamilyId)
	}
	r.familyMap[name] = id
	return fam
}

func (r *Registry) hasAttributes(fam *FontFamily, attrs Attributes) bool {
	for _, id := range fam.Members {
		if r.fonts[id].Attributes == attrs {
			return true
		}
	}
	return false
}

// insertMember inserts id into fam.Members keeping it sorted ascending by
// weight, stable for equal weights (new entries with equal weight are
// placed after existing ones, preserving registration order).
func (r *Registry) insertMember(fam *FontFamily, id FontId, attrs Attributes) {
	w := attrs.Weight
	idx := sort.Search(len(fam.Members), func(i int) bool {
		return r.fonts[fam.Members[i]].Attributes.Weight > w
	})
	fam.Members = append(fam.Members, 0)
	copy(fam.Members[idx+1:], fam.Members[idx:])
	fam.Members[idx] = id
}

// FamilyByName is an exact-match, case-sensitive lookup.
func (r *Registry) FamilyByName(name string) (FamilyId, bool) {
	id, ok := r.familyMap[name]
	return id, ok
}

// HasFamily reports whether name is registered.
func (r *Registry) HasFamily(name string) bool {
	_, ok := r.familyMap[name]
	return ok
}

// Family is a bounds-checked positional lookup.
func (r *Registry) Family(id FamilyId) (*FontFamily, bool) {
	if int(id) >= len(r.families) {
		return nil, false
	}
	return r.families[id], true
}

// FontByID is a bounds-checked positional lookup of a registered face.
func (r *Registry) FontByID(id FontId) (Font, bool) {
	if int(id) >= len(r.fonts) {
		return Font{}, false
	}
	return r.fonts[id], true
}

// Face returns the parsed go-text/typesetting face for id. Faces are parsed
// once, when AddFonts accepts them, and kept for the registry's lifetime.
func (r *Registry) Face(id FontId) (gotext.Face, bool) {
	face, ok := r.faces[id]
	return face, ok
}

// parseFaces parses every face out of a font-file blob. Most font files
// contain a single face; collection formats (TTC/OTC) contain several.
func parseFaces(data []byte) ([]gotext.Face, error) {
	faces, err := gotext.ParseTTC(bytesReader(data))
	if err == nil && len(faces) > 0 {
		return faces, nil
	}
	face, ferr := gotext.ParseTTF(bytesReader(data))
	if ferr != nil {
		return nil, ferr
	}
	return []gotext.Face{face}, nil
}

func attributesOf(face gotext.Face) Attributes {
	desc := face.Describe()
	return Attributes{
		Stretch: Stretch(desc.Aspect.Stretch),
		Weight:  Weight(desc.Aspect.Weight),
		Style:   styleFromAspect(desc.Aspect.Style),
	}
}
