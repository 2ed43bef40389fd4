// Package testing provides in-memory repository fakes and fixtures for exercising business flows without a database
package testing

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck/models"
)

// FakeUserRepository is an in-memory UserRepository. Every lookup method
// counts its calls so tests can assert which store paths were touched.
type FakeUserRepository struct {
	mu    sync.Mutex
	Users []*models.User

	ByIDCalls       int
	ByUsernameCalls int
	ByEmailCalls    int
	SaveCalls       int

	Err                error // returned by every method when set
	UpdateLastLoginErr error // returned only by UpdateLastLogin
}

func (r *FakeUserRepository) ByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ByIDCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *FakeUserRepository) ByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ByUsernameCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.Users {
		if u.Username == strings.ToLower(username) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *FakeUserRepository) ByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ByEmailCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.Users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *FakeUserRepository) ByUUID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.Users {
		if u.UUID.String() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *FakeUserRepository) Save(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SaveCalls++
	if r.Err != nil {
		return r.Err
	}
	if user.ID == 0 {
		user.ID = uint(len(r.Users) + 1)
	}
	r.Users = append(r.Users, user)
	return nil
}

func (r *FakeUserRepository) SaveBatch(ctx context.Context, users []*models.User) error {
	for _, u := range users {
		if err := r.Save(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, u := range r.Users {
		if u.ID == user.ID {
			r.Users[i] = user
			return nil
		}
	}
	return nil
}

func (r *FakeUserRepository) UpdateLastLogin(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	return r.UpdateLastLoginErr
}

func (r *FakeUserRepository) ByFilter(ctx context.Context, filter models.UserFilter, orderBy string, limit, offset int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*models.User
	for _, u := range r.Users {
		if filter.Username != nil && u.Username != *filter.Username {
			continue
		}
		if filter.Email != nil && u.Email != *filter.Email {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *FakeUserRepository) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	users, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(users)), err
}

func (r *FakeUserRepository) Exists(ctx context.Context, filter models.UserFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

// StoreCalls reports the total number of user lookups made.
func (r *FakeUserRepository) StoreCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ByIDCalls + r.ByUsernameCalls + r.ByEmailCalls
}

// FakeSocialLinkRepository is an in-memory SocialLinkRepository.
type FakeSocialLinkRepository struct {
	mu    sync.Mutex
	Links []*models.SocialLink

	ActiveByUserCalls int
	ListByUserCalls   int
	SaveCalls         int

	Err           error
	LastPositions map[uuid.UUID]int // last permutation applied
}

func (r *FakeSocialLinkRepository) ByID(ctx context.Context, id uint) (*models.SocialLink, error) {
	return nil, r.Err
}

func (r *FakeSocialLinkRepository) ByUUID(ctx context.Context, id uuid.UUID) (*models.SocialLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, l := range r.Links {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *FakeSocialLinkRepository) ListByUser(ctx context.Context, userID uint) ([]*models.SocialLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ListByUserCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	return r.byUserLocked(userID, false), nil
}

func (r *FakeSocialLinkRepository) ActiveByUser(ctx context.Context, userID uint) ([]*models.SocialLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ActiveByUserCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	return r.byUserLocked(userID, true), nil
}

// byUserLocked returns links sorted by position, the order the store promises.
func (r *FakeSocialLinkRepository) byUserLocked(userID uint, activeOnly bool) []*models.SocialLink {
	var out []*models.SocialLink
	for _, l := range r.Links {
		if l.UserID != userID {
			continue
		}
		if activeOnly && (l.IsActive == nil || !*l.IsActive) {
			continue
		}
		out = append(out, l)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Position < out[j-1].Position; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (r *FakeSocialLinkRepository) Save(ctx context.Context, link *models.SocialLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SaveCalls++
	if r.Err != nil {
		return r.Err
	}
	r.Links = append(r.Links, link)
	return nil
}

func (r *FakeSocialLinkRepository) SaveBatch(ctx context.Context, links []*models.SocialLink) error {
	for _, l := range links {
		if err := r.Save(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeSocialLinkRepository) Update(ctx context.Context, link *models.SocialLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, l := range r.Links {
		if l.ID == link.ID {
			r.Links[i] = link
			return nil
		}
	}
	return nil
}

func (r *FakeSocialLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, l := range r.Links {
		if l.ID == id {
			r.Links = append(r.Links[:i], r.Links[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *FakeSocialLinkRepository) UpdatePositions(ctx context.Context, userID uint, positions map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.LastPositions = positions
	for _, l := range r.Links {
		if pos, ok := positions[l.ID]; ok && l.UserID == userID {
			l.Position = pos
		}
	}
	return nil
}

func (r *FakeSocialLinkRepository) ByFilter(ctx context.Context, filter models.SocialLinkFilter, orderBy string, limit, offset int) ([]*models.SocialLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*models.SocialLink
	for _, l := range r.Links {
		if filter.UserID != nil && l.UserID != *filter.UserID {
			continue
		}
		if filter.Icon != nil && l.Icon != *filter.Icon {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *FakeSocialLinkRepository) Count(ctx context.Context, filter models.SocialLinkFilter) (int64, error) {
	links, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(links)), err
}

func (r *FakeSocialLinkRepository) Exists(ctx context.Context, filter models.SocialLinkFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

// FakeDocumentRepository is an in-memory DocumentRepository.
type FakeDocumentRepository struct {
	mu   sync.Mutex
	Docs []*models.Document

	PublicBySlugCalls int
	PublicByUUIDCalls int
	SaveCalls         int

	Err       error // returned by every method when set
	SlugErr   error // returned only by PublicBySlug
	SlugCalls []string
}

func (r *FakeDocumentRepository) ByID(ctx context.Context, id uint) (*models.Document, error) {
	return nil, r.Err
}

func (r *FakeDocumentRepository) ByUUID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, d := range r.Docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *FakeDocumentRepository) ListActiveByUser(ctx context.Context, userID uint) ([]*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*models.Document
	for _, d := range r.Docs {
		if d.UserID == userID && d.IsActive != nil && *d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *FakeDocumentRepository) PublicBySlug(ctx context.Context, userID uint, slug string) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PublicBySlugCalls++
	r.SlugCalls = append(r.SlugCalls, slug)
	if r.Err != nil {
		return nil, r.Err
	}
	if r.SlugErr != nil {
		return nil, r.SlugErr
	}
	for _, d := range r.Docs {
		if d.UserID != userID || d.Slug == nil || *d.Slug != slug {
			continue
		}
		if publicAndActive(d) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *FakeDocumentRepository) PublicByUUID(ctx context.Context, userID uint, id uuid.UUID) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PublicByUUIDCalls++
	if r.Err != nil {
		return nil, r.Err
	}
	for _, d := range r.Docs {
		if d.UserID == userID && d.ID == id && publicAndActive(d) {
			return d, nil
		}
	}
	return nil, nil
}

func publicAndActive(d *models.Document) bool {
	return d.IsActive != nil && *d.IsActive && d.IsPublic != nil && *d.IsPublic
}

func (r *FakeDocumentRepository) Save(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SaveCalls++
	if r.Err != nil {
		return r.Err
	}
	r.Docs = append(r.Docs, doc)
	return nil
}

func (r *FakeDocumentRepository) SaveBatch(ctx context.Context, docs []*models.Document) error {
	for _, d := range docs {
		if err := r.Save(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, d := range r.Docs {
		if d.ID == doc.ID {
			r.Docs[i] = doc
			return nil
		}
	}
	return nil
}

func (r *FakeDocumentRepository) ByFilter(ctx context.Context, filter models.DocumentFilter, orderBy string, limit, offset int) ([]*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*models.Document
	for _, d := range r.Docs {
		if filter.UserID != nil && d.UserID != *filter.UserID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *FakeDocumentRepository) Count(ctx context.Context, filter models.DocumentFilter) (int64, error) {
	docs, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(docs)), err
}

func (r *FakeDocumentRepository) Exists(ctx context.Context, filter models.DocumentFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

// StoreCalls reports the total number of document lookups made.
func (r *FakeDocumentRepository) StoreCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.PublicBySlugCalls + r.PublicByUUIDCalls
}

// FakeLinkClickRepository is an in-memory LinkClickRepository.
type FakeLinkClickRepository struct {
	mu     sync.Mutex
	Clicks []*models.LinkClick

	SaveCalls int
	Err       error
}

func (r *FakeLinkClickRepository) ByID(ctx context.Context, id uint) (*models.LinkClick, error) {
	return nil, r.Err
}

func (r *FakeLinkClickRepository) Save(ctx context.Context, click *models.LinkClick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SaveCalls++
	if r.Err != nil {
		return r.Err
	}
	r.Clicks = append(r.Clicks, click)
	return nil
}

func (r *FakeLinkClickRepository) SaveBatch(ctx context.Context, clicks []*models.LinkClick) error {
	for _, c := range clicks {
		if err := r.Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeLinkClickRepository) ListByLinkIDs(ctx context.Context, linkIDs []uuid.UUID) ([]*models.LinkClick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	wanted := make(map[uuid.UUID]bool, len(linkIDs))
	for _, id := range linkIDs {
		wanted[id] = true
	}
	var out []*models.LinkClick
	for _, c := range r.Clicks {
		if wanted[c.LinkID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *FakeLinkClickRepository) CountByLinkIDs(ctx context.Context, linkIDs []uuid.UUID) (int64, error) {
	clicks, err := r.ListByLinkIDs(ctx, linkIDs)
	return int64(len(clicks)), err
}

func (r *FakeLinkClickRepository) ByFilter(ctx context.Context, filter models.LinkClickFilter, orderBy string, limit, offset int) ([]*models.LinkClick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*models.LinkClick
	for _, c := range r.Clicks {
		if filter.LinkID != nil && c.LinkID != *filter.LinkID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *FakeLinkClickRepository) Count(ctx context.Context, filter models.LinkClickFilter) (int64, error) {
	clicks, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(clicks)), err
}

func (r *FakeLinkClickRepository) Exists(ctx context.Context, filter models.LinkClickFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

// SaveCallCount reads SaveCalls under the lock so callers can poll it while
// a recording goroutine is still running.
func (r *FakeLinkClickRepository) SaveCallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.SaveCalls
}

// FakeProfileViewRepository is an in-memory ProfileViewRepository.
type FakeProfileViewRepository struct {
	mu    sync.Mutex
	Views []*models.ProfileView

	SaveCalls int
	Err       error
}

func (r *FakeProfileViewRepository) ByID(ctx context.Context, id uint) (*models.ProfileView, error) {
	return nil, r.Err
}

func (r *FakeProfileViewRepository) Save(ctx context.Context, view *models.ProfileView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SaveCalls++
	if r.Err != nil {
		return r.Err
	}
	r.Views = append(r.Views, view)
	return nil
}

func (r *FakeProfileViewRepository) SaveBatch(ctx context.Context, views []*models.ProfileView) error {
	for _, v := range views {
		if err := r.Save(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeProfileViewRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, v := range r.Views {
		if v.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *FakeProfileViewRepository) ByFilter(ctx context.Context, filter models.ProfileViewFilter, orderBy string, limit, offset int) ([]*models.ProfileView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*models.ProfileView
	for _, v := range r.Views {
		if filter.UserID != nil && v.UserID != *filter.UserID {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *FakeProfileViewRepository) Count(ctx context.Context, filter models.ProfileViewFilter) (int64, error) {
	views, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(views)), err
}

func (r *FakeProfileViewRepository) Exists(ctx context.Context, filter models.ProfileViewFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}
