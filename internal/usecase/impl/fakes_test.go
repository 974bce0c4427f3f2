package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sort"
	"testing"
	"time"

	"scribe/config"
	"scribe/internal/domain/entity"
	"scribe/internal/domain/repository"
	"scribe/internal/domain/service"
	"scribe/internal/infra/auth"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			TokenSecret: "test-secret",
			TokenTTL:    10 * time.Minute,
			Iterations:  1000,
			SaltBytes:   16,
			HashBytes:   32,
		},
	}
	cfg.HTTP.ShareBaseURL = "https://blog.example.com/"

	return cfg
}

func newTestHasher() service.PasswordHasher {
	return auth.NewPBKDF2Hasher(newTestConfig())
}

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()
	tokens, err := auth.NewJWTService(newTestConfig())
	require.NoError(t, err)

	return tokens
}

// memStore is an in-memory credential and content store shared by the fake repositories.
// failWith, when set, is returned by every repository call.
type memStore struct {
	users    map[string]*entity.User
	posts    map[int64]*entity.BlogPost
	tags     map[string]struct{}
	nextID   int64
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		users: map[string]*entity.User{},
		posts: map[int64]*entity.BlogPost{},
		tags:  map[string]struct{}{},
	}
}

func (s *memStore) UserRepo() repository.UserRepository         { return memUserRepo{s} }
func (s *memStore) BlogPostRepo() repository.BlogPostRepository { return memBlogPostRepo{s} }
func (s *memStore) TagRepo() repository.TagRepository           { return memTagRepo{s} }

// memTxManager runs fn directly against the store.
type memTxManager struct {
	store *memStore
}

func (m memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.store)
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) FindByName(_ context.Context, name string) (*entity.User, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	u, ok := r.s.users[name]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u

	return &clone, nil
}

func (r memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	users := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })

	return users, nil
}

func (r memUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.s.failWith != nil {
		return r.s.failWith
	}
	if _, exists := r.s.users[user.Name]; exists {
		return repository.ErrDuplicate
	}
	clone := *user
	r.s.users[user.Name] = &clone

	return nil
}

func (r memUserRepo) Update(_ context.Context, name string, changes repository.Changeset) (*entity.User, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if err := changes.Validate(repository.ColumnUserName, repository.ColumnPasswordHash,
		repository.ColumnSalt, repository.ColumnIterations, repository.ColumnRole); err != nil {
		return nil, err
	}
	u, ok := r.s.users[name]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	updated := *u
	for _, a := range changes {
		switch a.Column {
		case repository.ColumnUserName:
			updated.Name = a.Value.(string)
		case repository.ColumnPasswordHash:
			updated.Credential.Hash = a.Value.(string)
		case repository.ColumnSalt:
			updated.Credential.Salt = a.Value.(string)
		case repository.ColumnIterations:
			updated.Credential.Iterations = a.Value.(int)
		case repository.ColumnRole:
			updated.Role = entity.Role(a.Value.(string))
		}
	}
	if updated.Name != name {
		if _, taken := r.s.users[updated.Name]; taken {
			return nil, repository.ErrDuplicate
		}
		delete(r.s.users, name)
	}
	r.s.users[updated.Name] = &updated
	clone := updated

	return &clone, nil
}

func (r memUserRepo) Delete(_ context.Context, name string) (*entity.User, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	u, ok := r.s.users[name]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	delete(r.s.users, name)

	return u, nil
}

type memBlogPostRepo struct{ s *memStore }

func (r memBlogPostRepo) FindByID(_ context.Context, id int64) (*entity.BlogPost, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrBlogPostNotFound
	}
	clone := *p
	clone.Tags = slices.Clone(p.Tags)

	return &clone, nil
}

func (r memBlogPostRepo) List(ctx context.Context) ([]*entity.BlogPost, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	posts := make([]*entity.BlogPost, 0, len(r.s.posts))
	for id := range r.s.posts {
		p, _ := r.FindByID(ctx, id)
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })

	return posts, nil
}

func (r memBlogPostRepo) Create(_ context.Context, post *entity.BlogPost) error {
	if r.s.failWith != nil {
		return r.s.failWith
	}
	r.s.nextID++
	post.ID = r.s.nextID
	for _, tag := range post.Tags {
		r.s.tags[tag] = struct{}{}
	}
	clone := *post
	clone.Tags = slices.Clone(post.Tags)
	r.s.posts[post.ID] = &clone

	return nil
}

func (r memBlogPostRepo) Update(ctx context.Context, id int64, changes repository.Changeset, tags []string) (*entity.BlogPost, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if err := changes.Validate(repository.ColumnTitle, repository.ColumnBody, repository.ColumnModified); err != nil {
		return nil, err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrBlogPostNotFound
	}
	for _, a := range changes {
		switch a.Column {
		case repository.ColumnTitle:
			p.Title = a.Value.(string)
		case repository.ColumnBody:
			p.Body = a.Value.(string)
		case repository.ColumnModified:
			modified := a.Value.(time.Time)
			p.Modified = &modified
		}
	}
	if tags != nil {
		p.Tags = slices.Clone(tags)
		for _, tag := range tags {
			r.s.tags[tag] = struct{}{}
		}
	}

	return r.FindByID(ctx, id)
}

func (r memBlogPostRepo) Delete(ctx context.Context, id int64) (*entity.BlogPost, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(r.s.posts, id)

	return p, nil
}

type memTagRepo struct{ s *memStore }

func (r memTagRepo) FindByName(_ context.Context, name string) (*entity.Tag, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if _, ok := r.s.tags[name]; !ok {
		return nil, repository.ErrTagNotFound
	}

	return &entity.Tag{Name: name}, nil
}

func (r memTagRepo) List(_ context.Context) ([]*entity.Tag, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	names := make([]string, 0, len(r.s.tags))
	for name := range r.s.tags {
		names = append(names, name)
	}
	sort.Strings(names)

	tags := make([]*entity.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, &entity.Tag{Name: name})
	}

	return tags, nil
}

func (r memTagRepo) Create(_ context.Context, tag *entity.Tag) error {
	if r.s.failWith != nil {
		return r.s.failWith
	}
	if _, exists := r.s.tags[tag.Name]; exists {
		return repository.ErrDuplicate
	}
	r.s.tags[tag.Name] = struct{}{}

	return nil
}

func (r memTagRepo) Rename(_ context.Context, name, newName string) (*entity.Tag, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if _, ok := r.s.tags[name]; !ok {
		return nil, repository.ErrTagNotFound
	}
	if _, taken := r.s.tags[newName]; taken && newName != name {
		return nil, repository.ErrDuplicate
	}
	delete(r.s.tags, name)
	r.s.tags[newName] = struct{}{}
	for _, p := range r.s.posts {
		for i, tag := range p.Tags {
			if tag == name {
				p.Tags[i] = newName
			}
		}
	}

	return &entity.Tag{Name: newName}, nil
}

func (r memTagRepo) Delete(_ context.Context, name string) (*entity.Tag, error) {
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if _, ok := r.s.tags[name]; !ok {
		return nil, repository.ErrTagNotFound
	}
	delete(r.s.tags, name)
	for _, p := range r.s.posts {
		p.Tags = slices.DeleteFunc(p.Tags, func(tag string) bool { return tag == name })
	}

	return &entity.Tag{Name: name}, nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *service.ContentEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

// expectEvent registers an expectation for one event of eventType about subject.
func (m *mockPublisher) expectEvent(eventType, subject string) *mock.Call {
	return m.On("Publish", mock.Anything, mock.MatchedBy(func(e *service.ContentEvent) bool {
		return e.Type == eventType && e.Subject == subject && e.ID != ""
	})).Return(nil).Once()
}

type mockThrottle struct {
	mock.Mock
}

func (m *mockThrottle) Allow(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)

	return args.Bool(0), args.Error(1)
}

func (m *mockThrottle) RecordFailure(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockThrottle) Reset(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type mockQRCodes struct {
	mock.Mock
}

func (m *mockQRCodes) Encode(content string) ([]byte, error) {
	args := m.Called(content)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

// seedUser stores a user whose password is password.
func seedUser(t *testing.T, store *memStore, name, password string, role entity.Role) {
	t.Helper()
	credential, err := newTestHasher().Derive(password)
	require.NoError(t, err)
	store.users[name] = &entity.User{Name: name, Credential: credential, Role: role}
}

func identity(name string, role entity.Role) *entity.Identity {
	return &entity.Identity{Name: name, Role: role}
}
