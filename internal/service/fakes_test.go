package service

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"Ieum/internal/cache"
	"Ieum/internal/model"
)

// fakeUserStore keeps users in memory, indexed the way the repository
// queries them.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[int64]*model.User{}}
}

func (s *fakeUserStore) add(user *model.User) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	} else if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}
	s.users[user.ID] = user
	return user
}

func (s *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	s.add(user)
	return nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) FindByLoginID(ctx context.Context, loginID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.LoginID == loginID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) SetPartnerID(ctx context.Context, userID, partnerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	pid := partnerID
	user.PartnerID = &pid
	return nil
}

func (s *fakeUserStore) UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		user.Name = name
	}
	if image, ok := updates["image"].(string); ok {
		user.Image = image
	}
	if fontSize, ok := updates["font_size"].(int); ok {
		user.FontSize = fontSize
	}
	if enabled, ok := updates["notifications_enabled"].(bool); ok {
		user.NotificationsEnabled = enabled
	}
	if brightness, ok := updates["brightness"].(int); ok {
		user.Brightness = brightness
	}
	return nil
}

func (s *fakeUserStore) UpdatePushToken(ctx context.Context, userID int64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.ExpoPushToken = token
	return nil
}

// fakeSessionStore mirrors the Redis session repository.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*model.Session{}}
}

func (s *fakeSessionStore) Get(ctx context.Context, deviceID string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[deviceID]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, cache.ErrSessionMissing
}

func (s *fakeSessionStore) Set(ctx context.Context, deviceID string, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[deviceID] = &copied
	return nil
}

func (s *fakeSessionStore) Clear(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, deviceID)
	return nil
}

// fakeAlarmStore keeps alarms keyed by public id.
type fakeAlarmStore struct {
	mu     sync.Mutex
	alarms map[int64]*model.Alarm
	order  []int64
}

func newFakeAlarmStore() *fakeAlarmStore {
	return &fakeAlarmStore{alarms: map[int64]*model.Alarm{}}
}

func (s *fakeAlarmStore) Create(ctx context.Context, alarm *model.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *alarm
	s.alarms[alarm.PublicID] = &copied
	s.order = append(s.order, alarm.PublicID)
	return nil
}

func (s *fakeAlarmStore) FindByPublicID(ctx context.Context, publicID int64) (*model.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if alarm, ok := s.alarms[publicID]; ok {
		copied := *alarm
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAlarmStore) ListByUser(ctx context.Context, userID int64) ([]model.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []model.Alarm{}
	for _, id := range s.order {
		if alarm, ok := s.alarms[id]; ok && alarm.UserID == userID {
			result = append(result, *alarm)
		}
	}
	return result, nil
}

func (s *fakeAlarmStore) Update(ctx context.Context, publicID int64, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	alarm, ok := s.alarms[publicID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if t, ok := updates["time"].(string); ok {
		alarm.Time = t
	}
	if title, ok := updates["title"].(string); ok {
		alarm.Title = title
	}
	if detail, ok := updates["detail"].(string); ok {
		alarm.Detail = detail
	}
	if repeat, ok := updates["repeat"].(bool); ok {
		alarm.Repeat = repeat
	}
	if days, ok := updates["days"].(model.WeekdaySet); ok {
		alarm.Days = days
	}
	if completed, ok := updates["completed"].(bool); ok {
		alarm.Completed = completed
	}
	return nil
}

func (s *fakeAlarmStore) Delete(ctx context.Context, publicID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alarms[publicID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.alarms, publicID)
	return nil
}

// fakeResponseStore appends reaction records and enforces the unique key.
type fakeResponseStore struct {
	mu      sync.Mutex
	records []model.Response
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{}
}

func (s *fakeResponseStore) Append(ctx context.Context, response *model.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ResponseKey == response.ResponseKey {
			return gorm.ErrDuplicatedKey
		}
	}
	s.records = append(s.records, *response)
	return nil
}

func (s *fakeResponseStore) ListByAlarm(ctx context.Context, alarmID int64) ([]model.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []model.Response{}
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].AlarmID == alarmID {
			result = append(result, s.records[i])
		}
	}
	return result, nil
}

// fakeScheduleStore keeps day arrays keyed by user and date.
type fakeScheduleStore struct {
	mu     sync.Mutex
	nextID int64
	days   map[int64]map[string]*model.ScheduleDay
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{nextID: 1, days: map[int64]map[string]*model.ScheduleDay{}}
}

func (s *fakeScheduleStore) GetDay(ctx context.Context, userID int64, date string) (*model.ScheduleDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if byDate, ok := s.days[userID]; ok {
		if day, ok := byDate[date]; ok {
			copied := *day
			copied.Items = append(model.ScheduleItems{}, day.Items...)
			return &copied, nil
		}
	}
	return &model.ScheduleDay{UserID: userID, Date: date, Items: model.ScheduleItems{}}, nil
}

func (s *fakeScheduleStore) PutDay(ctx context.Context, day *model.ScheduleDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if day.ID == 0 {
		day.ID = s.nextID
		s.nextID++
	}
	if s.days[day.UserID] == nil {
		s.days[day.UserID] = map[string]*model.ScheduleDay{}
	}
	copied := *day
	copied.Items = append(model.ScheduleItems{}, day.Items...)
	s.days[day.UserID][day.Date] = &copied
	return nil
}

func (s *fakeScheduleStore) ListMonth(ctx context.Context, userID int64, month string) ([]model.ScheduleDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []model.ScheduleDay{}
	for date, day := range s.days[userID] {
		if len(date) >= 7 && date[:7] == month {
			result = append(result, *day)
		}
	}
	return result, nil
}
