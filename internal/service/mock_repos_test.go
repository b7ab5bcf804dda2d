package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/zyrrhky/schedease/internal/model"
	"github.com/zyrrhky/schedease/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	order    []string
	seq      int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		m.seq++
		subject.SubjectID = fmt.Sprintf("subject-%d", m.seq)
	}
	m.subjects[subject.SubjectID] = subject
	m.order = append(m.order, subject.SubjectID)
	return nil
}

func (m *mockSubjectRepo) BatchCreate(ctx context.Context, subjects []model.Subject) error {
	for i := range subjects {
		if err := m.Create(ctx, &subjects[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, userID, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok && s.UserID == userID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) ListByUser(_ context.Context, userID string) ([]model.Subject, error) {
	var result []model.Subject
	for _, id := range m.order {
		if s, ok := m.subjects[id]; ok && s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubjectRepo) ListByUserPaged(ctx context.Context, userID, keyword string, offset, limit int) ([]model.Subject, int64, error) {
	all, _ := m.ListByUser(ctx, userID)

	var filtered []model.Subject
	for _, s := range all {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(s.SubjectTitle), strings.ToLower(keyword)) &&
			!strings.Contains(strings.ToLower(s.SubjectCode), strings.ToLower(keyword)) {
			continue
		}
		filtered = append(filtered, s)
	}

	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []model.Subject{}, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockSubjectRepo) ListByIDs(_ context.Context, userID string, ids []string) ([]model.Subject, error) {
	var result []model.Subject
	for _, id := range ids {
		if s, ok := m.subjects[id]; ok && s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubjectRepo) ExistsByTitle(_ context.Context, userID, title string) (bool, error) {
	for _, s := range m.subjects {
		if s.UserID == userID && strings.EqualFold(s.SubjectTitle, title) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubjectRepo) ExistsByDataID(_ context.Context, userID, dataID string) (bool, error) {
	for _, s := range m.subjects {
		if s.UserID == userID && s.DataID == dataID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, userID, id string) error {
	if s, ok := m.subjects[id]; ok && s.UserID == userID {
		delete(m.subjects, id)
	}
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	seq       int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("schedule-%d", m.seq)
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, userID, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok && s.UserID == userID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByUser(_ context.Context, userID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListContainingSubject(_ context.Context, userID, subjectID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.UserID == userID && s.SubjectIDs.Contains(subjectID) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, userID, id string) error {
	if s, ok := m.schedules[id]; ok && s.UserID == userID {
		delete(m.schedules, id)
	}
	return nil
}

// ── 聚合构造 ──

// newMockRepository 构造注入全部 mock 的 Repository 聚合
func newMockRepository() (*repository.Repository, *mockUserRepo, *mockSubjectRepo, *mockScheduleRepo) {
	users := newMockUserRepo()
	subjects := newMockSubjectRepo()
	schedules := newMockScheduleRepo()
	repo := &repository.Repository{
		User:     users,
		Subject:  subjects,
		Schedule: schedules,
	}
	return repo, users, subjects, schedules
}
