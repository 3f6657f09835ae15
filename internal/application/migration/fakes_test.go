package migration

import (
	"fmt"
	"strings"

	"github.com/vtcwoerden/materiaal-api/internal/domain"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
)

// In-memory fakes backing the engine tests. fakeItems can be told to fail
// creation for specific names, so tests can exercise per-record error
// handling without a database.

func termNames(terms []entity.Term) []string {
	names := make([]string, 0, len(terms))
	for _, t := range terms {
		names = append(names, t.Name)
	}
	return names
}

func newManualItem(name string) *entity.Item {
	return &entity.Item{ID: "manual-" + name, Name: name, Quantity: 1}
}

type fakeStore struct {
	fakeItems    *fakeItems
	fakeTaxonomy *fakeTaxonomy
	fakePhotos   *fakePhotos
	fakeMedia    *fakeMedia
	fakeSettings *fakeSettings
	fakeLocker   *fakeLocker
}

func newFakeStore() *fakeStore {
	s := &fakeStore{
		fakeTaxonomy: &fakeTaxonomy{terms: map[string]*entity.Term{}},
		fakePhotos:   &fakePhotos{photos: map[string][]entity.Photo{}},
		fakeMedia:    &fakeMedia{objects: map[string][]byte{}},
		fakeSettings: &fakeSettings{values: map[string]string{}},
		fakeLocker:   &fakeLocker{},
	}
	s.fakeItems = &fakeItems{byID: map[string]*entity.Item{}, taxonomy: s.fakeTaxonomy}
	s.fakeTaxonomy.items = s.fakeItems
	return s
}

type fakeItems struct {
	byID     map[string]*entity.Item
	order    []string
	taxonomy *fakeTaxonomy
	// failCreate makes Create fail for the named items.
	failCreate map[string]error
}

var _ repository.ItemRepository = (*fakeItems)(nil)

func (f *fakeItems) Create(item *entity.Item) error {
	if err, ok := f.failCreate[item.Name]; ok {
		return err
	}
	cp := *item
	f.byID[item.ID] = &cp
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeItems) GetByID(id string) (*entity.Item, error) {
	item, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItems) GetByName(name string) (*entity.Item, error) {
	for _, id := range f.order {
		if item := f.byID[id]; item.Name == name {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeItems) Update(item *entity.Item) error {
	if _, ok := f.byID[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	f.byID[item.ID] = &cp
	return nil
}

func (f *fakeItems) Delete(id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeItems) List(filter repository.ItemFilter) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, id := range f.order {
		item := f.byID[id]
		if filter.MigratedOnly && !item.Migrated {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeItems) ReplaceTerms(itemID string, taxonomy entity.Taxonomy, termIDs []string) error {
	item, ok := f.byID[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	var terms []entity.Term
	for _, id := range termIDs {
		term, ok := f.taxonomy.terms[id]
		if !ok {
			return domain.ErrNotFound
		}
		terms = append(terms, *term)
	}
	switch taxonomy {
	case entity.TaxonomyOwner:
		item.Owner = terms
	case entity.TaxonomyCondition:
		item.Condition = terms
	case entity.TaxonomyLocation:
		item.Location = terms
	}
	return nil
}

type fakeTaxonomy struct {
	terms map[string]*entity.Term
	next  int
	items *fakeItems
	// onCount runs at the start of every CountItems with the per-term call
	// number, starting at 1. Tests use it to mutate state between counts.
	onCount    func(termID string, call int)
	countCalls map[string]int
}

var _ repository.TaxonomyRepository = (*fakeTaxonomy)(nil)

func (f *fakeTaxonomy) EnsureTerm(taxonomy entity.Taxonomy, name string) (*entity.Term, error) {
	for _, term := range f.terms {
		if term.Taxonomy == taxonomy && term.Name == name {
			cp := *term
			return &cp, nil
		}
	}
	f.next++
	term := &entity.Term{
		ID:       fmt.Sprintf("term-%d", f.next),
		Taxonomy: taxonomy,
		Slug:     strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Name:     name,
	}
	f.terms[term.ID] = term
	cp := *term
	return &cp, nil
}

func (f *fakeTaxonomy) GetBySlug(taxonomy entity.Taxonomy, slug string) (*entity.Term, error) {
	for _, term := range f.terms {
		if term.Taxonomy == taxonomy && term.Slug == slug {
			cp := *term
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTaxonomy) List(taxonomy entity.Taxonomy) ([]*entity.Term, error) {
	var out []*entity.Term
	for _, term := range f.terms {
		if term.Taxonomy == taxonomy {
			cp := *term
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTaxonomy) ListAll() ([]*entity.Term, error) {
	var out []*entity.Term
	for _, term := range f.terms {
		cp := *term
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTaxonomy) CountItems(termID string) (int, error) {
	if f.onCount != nil {
		if f.countCalls == nil {
			f.countCalls = map[string]int{}
		}
		f.countCalls[termID]++
		f.onCount(termID, f.countCalls[termID])
	}
	count := 0
	for _, item := range f.items.byID {
		for _, set := range [][]entity.Term{item.Owner, item.Condition, item.Location} {
			for _, term := range set {
				if term.ID == termID {
					count++
				}
			}
		}
	}
	return count, nil
}

func (f *fakeTaxonomy) Delete(termID string) error {
	if _, ok := f.terms[termID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.terms, termID)
	return nil
}

type fakePhotos struct {
	photos map[string][]entity.Photo
}

var _ repository.PhotoRepository = (*fakePhotos)(nil)

func (f *fakePhotos) Create(photo *entity.Photo) error {
	photo.Position = len(f.photos[photo.ItemID])
	f.photos[photo.ItemID] = append(f.photos[photo.ItemID], *photo)
	return nil
}

func (f *fakePhotos) ListByItem(itemID string) ([]entity.Photo, error) {
	return append([]entity.Photo(nil), f.photos[itemID]...), nil
}

func (f *fakePhotos) DeleteByItem(itemID string) error {
	delete(f.photos, itemID)
	return nil
}

type fakeMedia struct {
	objects map[string][]byte
}

func (f *fakeMedia) Put(key, contentType string, data []byte) (string, error) {
	f.objects[key] = data
	return "https://media.test/" + key, nil
}

func (f *fakeMedia) Delete(key string) error {
	delete(f.objects, key)
	return nil
}

type fakeSettings struct {
	values map[string]string
}

var _ repository.SettingsRepository = (*fakeSettings)(nil)

func (f *fakeSettings) Get(key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (f *fakeSettings) Set(key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettings) Delete(key string) error {
	delete(f.values, key)
	return nil
}

type fakeLocker struct {
	held bool
}

func (f *fakeLocker) TryLock() (bool, error) {
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLocker) Unlock() error {
	f.held = false
	return nil
}
