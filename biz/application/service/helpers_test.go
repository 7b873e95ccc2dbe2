package service

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"flashcard-show/biz/adaptor"
	"flashcard-show/biz/infrastructure/cache"
	"flashcard-show/biz/infrastructure/config"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/repository/assignment"
	"flashcard-show/biz/infrastructure/repository/catalog"
	"flashcard-show/biz/infrastructure/repository/class"
	"flashcard-show/biz/infrastructure/repository/flashcard"
	"flashcard-show/biz/infrastructure/repository/notification"
	"flashcard-show/biz/infrastructure/repository/submission"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var setupConfigOnce sync.Once

// setupConfig 生成一次性的ES256密钥对, 供签发和校验测试token
func setupConfig(t *testing.T) *config.Config {
	t.Helper()
	setupConfigOnce.Do(func() {
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		priv, err := x509.MarshalECPrivateKey(key)
		require.NoError(t, err)
		pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		require.NoError(t, err)

		c := &config.Config{}
		c.Auth = config.Auth{
			SecretKey:    string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: priv})),
			PublicKey:    string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub})),
			AccessExpire: 3600,
		}
		c.Assignment.PerQuestionSeconds = consts.DefaultPerQuestionSeconds
		config.SetConfig(c)
	})
	return config.GetConfig()
}

func authCtx(t *testing.T, userID, role string) context.Context {
	t.Helper()
	setupConfig(t)
	c := app.NewContext(0)
	if userID != "" {
		token, _, err := adaptor.GenerateJwtToken(map[string]any{"userId": userID, "role": role})
		require.NoError(t, err)
		c.Request.Header.Set(consts.Authorization, token)
	}
	return adaptor.InjectContext(context.Background(), c)
}

func freezeTime(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return oid, consts.ErrInvalidObjectId
	}
	return oid, nil
}

type fakeAssignmentMapper struct {
	mu   sync.Mutex
	data map[string]*assignment.Assignment
}

func newFakeAssignmentMapper() *fakeAssignmentMapper {
	return &fakeAssignmentMapper{data: map[string]*assignment.Assignment{}}
}

func (f *fakeAssignmentMapper) Insert(_ context.Context, a *assignment.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.data[a.ID.Hex()] = a
	return nil
}

func (f *fakeAssignmentMapper) FindOne(_ context.Context, id string) (*assignment.Assignment, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return a, nil
}

func (f *fakeAssignmentMapper) FindByClassID(_ context.Context, classID string, _, _ int64) ([]*assignment.Assignment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*assignment.Assignment
	for _, a := range f.data {
		if a.ClassID == classID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAssignmentMapper) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, id)
	return nil
}

// fakeSubmissionMapper 模拟 (assignment_id, student_id) 唯一索引
type fakeSubmissionMapper struct {
	mu        sync.Mutex
	data      map[string]*submission.Submission
	insertErr error
}

func newFakeSubmissionMapper() *fakeSubmissionMapper {
	return &fakeSubmissionMapper{data: map[string]*submission.Submission{}}
}

func (f *fakeSubmissionMapper) Insert(_ context.Context, s *submission.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	key := s.AssignmentID + "|" + s.StudentID
	if _, ok := f.data[key]; ok {
		return consts.ErrAlreadySubmitted
	}
	s.ID = primitive.NewObjectID()
	f.data[key] = s
	return nil
}

func (f *fakeSubmissionMapper) FindByAssignmentAndStudent(_ context.Context, assignmentID, studentID string) (*submission.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.data[assignmentID+"|"+studentID]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return s, nil
}

func (f *fakeSubmissionMapper) FindByAssignmentID(_ context.Context, assignmentID string, _, _ int64) ([]*submission.Submission, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*submission.Submission
	for _, s := range f.data {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, int64(len(out)), nil
}

func (f *fakeSubmissionMapper) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

type fakeClassMapper struct {
	mu   sync.Mutex
	data map[string]*class.Class
}

func newFakeClassMapper() *fakeClassMapper {
	return &fakeClassMapper{data: map[string]*class.Class{}}
}

func (f *fakeClassMapper) Insert(_ context.Context, c *class.Class) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	f.data[c.ID.Hex()] = c
	return nil
}

func (f *fakeClassMapper) FindOne(_ context.Context, id string) (*class.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return c, nil
}

func (f *fakeClassMapper) FindOneByInviteCode(_ context.Context, inviteCode string) (*class.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.data {
		if c.InviteCode == inviteCode {
			return c, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (f *fakeClassMapper) FindByCreator(_ context.Context, creatorID string, _, _ int64) ([]*class.Class, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*class.Class
	for _, c := range f.data {
		if c.CreatorID == creatorID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeClassMapper) FindByIDs(_ context.Context, ids []string) ([]*class.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*class.Class
	for _, id := range ids {
		if c, ok := f.data[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClassMapper) UpdateCount(_ context.Context, id string, counter class.Counter, increment int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.data[id]
	if !ok {
		return consts.ErrNotFound
	}
	switch counter {
	case class.MemberCounter:
		c.MemberCount += increment
	case class.AssignmentCounter:
		c.AssignmentCount += increment
	}
	return nil
}

type fakeMemberMapper struct {
	mu   sync.Mutex
	data []*class.Member
}

func (f *fakeMemberMapper) Insert(_ context.Context, m *class.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = primitive.NewObjectID()
	f.data = append(f.data, m)
	return nil
}

func (f *fakeMemberMapper) FindByClassID(_ context.Context, classID string, _, _ int64) ([]*class.Member, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*class.Member
	for _, m := range f.data {
		if m.ClassID == classID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMemberMapper) FindByUserID(_ context.Context, userID string) ([]*class.Member, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*class.Member
	for _, m := range f.data {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMemberMapper) FindByClassIDAndUserID(_ context.Context, classID, userID string) (*class.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.data {
		if m.ClassID == classID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, consts.ErrNotFound
}

type fakeSetMapper struct {
	mu   sync.Mutex
	data map[string]*flashcard.Set
}

func newFakeSetMapper() *fakeSetMapper {
	return &fakeSetMapper{data: map[string]*flashcard.Set{}}
}

func (f *fakeSetMapper) Insert(_ context.Context, s *flashcard.Set) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	f.data[s.ID.Hex()] = s
	return nil
}

func (f *fakeSetMapper) Update(_ context.Context, s *flashcard.Set) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[s.ID.Hex()] = s
	return nil
}

func (f *fakeSetMapper) FindOne(_ context.Context, id string) (*flashcard.Set, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	// 返回副本, 模拟从存储读出
	cp := *s
	cp.Cards = append([]*flashcard.Card(nil), s.Cards...)
	return &cp, nil
}

func (f *fakeSetMapper) FindByOwner(_ context.Context, ownerID string, _, _ int64) ([]*flashcard.Set, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*flashcard.Set
	for _, s := range f.data {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeSetMapper) FindCardsByTerm(_ context.Context, ownerID, term string, limit int64) ([]*flashcard.Card, error) {
	sets, _, _ := f.FindByOwner(context.Background(), ownerID, 1, 100)
	return flashcard.MatchCards(sets, term, int(limit)), nil
}

type fakeNotificationMapper struct {
	mu   sync.Mutex
	data []*notification.Notification
	err  error
}

func (f *fakeNotificationMapper) Insert(_ context.Context, n *notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	n.ID = primitive.NewObjectID()
	f.data = append(f.data, n)
	return nil
}

func (f *fakeNotificationMapper) FindByRecipient(_ context.Context, recipient string, unreadOnly bool, _, _ int64) ([]*notification.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*notification.Notification
	for _, n := range f.data {
		if n.Recipient == recipient && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationMapper) MarkRead(_ context.Context, id, recipient string) error {
	if _, err := parseID(id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.data {
		if n.ID.Hex() == id && n.Recipient == recipient {
			n.Read = true
			return nil
		}
	}
	return consts.ErrNotFound
}

func (f *fakeNotificationMapper) Snapshot() []*notification.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*notification.Notification(nil), f.data...)
}

type fakeSuggestionCache struct {
	mu   sync.Mutex
	data map[string][]*cache.Suggestion
}

func newFakeSuggestionCache() *fakeSuggestionCache {
	return &fakeSuggestionCache{data: map[string][]*cache.Suggestion{}}
}

func (f *fakeSuggestionCache) Get(_ context.Context, term string) ([]*cache.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.data[cache.BuildSuggestionKey(term)]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return s, nil
}

func (f *fakeSuggestionCache) Set(_ context.Context, term string, data []*cache.Suggestion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[cache.BuildSuggestionKey(term)] = data
	return nil
}

type fakeCatalogMapper struct {
	entries []*catalog.Entry
	filter  *catalog.Filter
	err     error
}

func (f *fakeCatalogMapper) List(_ context.Context, filter *catalog.Filter) ([]*catalog.Entry, int64, error) {
	f.filter = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.entries, int64(len(f.entries)), nil
}

// prefixSigner 把key拼到固定域名下
type prefixSigner struct{}

func (prefixSigner) SignImage(ref string) (string, error) {
	if strings.HasPrefix(ref, "http") {
		return ref, nil
	}
	return "https://cdn.test/" + ref + "?sig=1", nil
}
