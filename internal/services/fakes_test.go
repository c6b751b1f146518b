package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	"room-inventory/internal/repositories"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/eventbus"
	"room-inventory/pkg/querycache"
	"room-inventory/pkg/types"
)

// fakeDB is an in-memory stand-in for the tables the services touch.
// journal records every write in the order it happened.
type fakeDB struct {
	mu       sync.Mutex
	rooms    map[uuid.UUID]entities.Room
	items    map[uuid.UUID]entities.Item
	logs     []entities.ActivityLog
	profiles map[uuid.UUID]entities.Profile
	users    map[uuid.UUID]entities.User
	floors   map[uuid.UUID]entities.Floor
	journal  []string
	seq      int64
	clock    time.Time

	failAppend   error
	failProfiles error
	itemReads    int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		rooms:    make(map[uuid.UUID]entities.Room),
		items:    make(map[uuid.UUID]entities.Item),
		profiles: make(map[uuid.UUID]entities.Profile),
		users:    make(map[uuid.UUID]entities.User),
		floors:   make(map[uuid.UUID]entities.Floor),
		clock:    time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (db *fakeDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func (db *fakeDB) addRoom(number string) entities.Room {
	db.mu.Lock()
	defer db.mu.Unlock()
	room := entities.Room{ID: uuid.New(), RoomNumber: number, FloorID: uuid.New(), FloorNumber: 1, Status: entities.RoomStatusActive}
	db.rooms[room.ID] = room
	return room
}

func (db *fakeDB) itemsInRoom(roomID uuid.UUID) []entities.Item {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []entities.Item
	for _, item := range db.items {
		if item.RoomID == roomID {
			out = append(out, item)
		}
	}
	return out
}

func (db *fakeDB) allLogs() []entities.ActivityLog {
	db.mu.Lock()
	defer db.mu.Unlock()
	return slices.Clone(db.logs)
}

func (db *fakeDB) writes() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return slices.Clone(db.journal)
}

type fakeTxManager struct{ db *fakeDB }

// RunInTransaction restores the item and log tables when fn fails.
func (m fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.db.mu.Lock()
	items := make(map[uuid.UUID]entities.Item, len(m.db.items))
	for k, v := range m.db.items {
		items[k] = v
	}
	logs := slices.Clone(m.db.logs)
	m.db.mu.Unlock()

	if err := fn(nil); err != nil {
		m.db.mu.Lock()
		m.db.items = items
		m.db.logs = logs
		m.db.journal = append(m.db.journal, "rollback")
		m.db.mu.Unlock()
		return err
	}
	return nil
}

type fakeItemRepo struct{ db *fakeDB }

func (r fakeItemRepo) ListByRoom(ctx context.Context, roomID uuid.UUID, filter types.Filter) ([]entities.Item, uint64, error) {
	r.db.mu.Lock()
	r.db.itemReads++
	r.db.mu.Unlock()
	items := r.db.itemsInRoom(roomID)
	slices.SortFunc(items, func(a, b entities.Item) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return items, uint64(len(items)), nil
}

func (r fakeItemRepo) ListIDsByRoom(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, item := range r.db.itemsInRoom(roomID) {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

func (r fakeItemRepo) FindInRoom(ctx context.Context, roomID, itemID uuid.UUID) (*entities.Item, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item, ok := r.db.items[itemID]
	if !ok || item.RoomID != roomID {
		return nil, apperrors.ErrItemNotFound
	}
	return &item, nil
}

func (r fakeItemRepo) CreateItem(ctx context.Context, tx pgx.Tx, item entities.Item) (*entities.Item, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item.ID = uuid.New()
	now := r.db.tick()
	item.CreatedAt, item.UpdatedAt = now, now
	r.db.items[item.ID] = item
	r.db.journal = append(r.db.journal, "insert item")
	return &item, nil
}

func (r fakeItemRepo) UpdateItem(ctx context.Context, tx pgx.Tx, item entities.Item) (*entities.Item, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.items[item.ID]
	if !ok || current.RoomID != item.RoomID {
		return nil, apperrors.ErrItemNotFound
	}
	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = r.db.tick()
	r.db.items[item.ID] = item
	r.db.journal = append(r.db.journal, "update item")
	return &item, nil
}

func (r fakeItemRepo) DeleteItem(ctx context.Context, tx pgx.Tx, roomID, itemID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item, ok := r.db.items[itemID]
	if !ok || item.RoomID != roomID {
		return apperrors.ErrItemNotFound
	}
	delete(r.db.items, itemID)
	r.db.journal = append(r.db.journal, "delete item")
	return nil
}

type fakeRoomRepo struct{ db *fakeDB }

func (r fakeRoomRepo) CreateRoom(ctx context.Context, room entities.Room) (*entities.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	floor, ok := r.db.floors[room.FloorID]
	if !ok {
		return nil, apperrors.ErrFloorNotFound
	}
	for _, existing := range r.db.rooms {
		if existing.FloorID == room.FloorID && existing.RoomNumber == room.RoomNumber {
			return nil, apperrors.ErrConflict
		}
	}
	room.ID = uuid.New()
	room.FloorNumber = floor.FloorNumber
	room.CreatedAt = r.db.tick()
	room.UpdatedAt = room.CreatedAt
	room.Floor = &floor
	r.db.rooms[room.ID] = room
	return &room, nil
}

func (r fakeRoomRepo) FindRoom(ctx context.Context, id uuid.UUID) (*entities.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	room, ok := r.db.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return &room, nil
}

func (r fakeRoomRepo) FindByRoomNumber(ctx context.Context, number string, floorNumber *int) ([]entities.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []entities.Room
	for _, room := range r.db.rooms {
		if room.RoomNumber == number && (floorNumber == nil || room.FloorNumber == *floorNumber) {
			out = append(out, room)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.ErrRoomNotFound
	}
	slices.SortFunc(out, func(a, b entities.Room) int { return a.FloorNumber - b.FloorNumber })
	return out, nil
}

func (r fakeRoomRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RoomStatus) (*entities.Room, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	room, ok := r.db.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	previous := room.Status
	room.PreviousStatus = &previous
	room.Status = status
	r.db.rooms[id] = room
	return &room, nil
}

type fakeLogRepo struct{ db *fakeDB }

func (r fakeLogRepo) Append(ctx context.Context, tx pgx.Tx, log entities.ActivityLog) (*entities.ActivityLog, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failAppend != nil {
		return nil, r.db.failAppend
	}
	r.db.seq++
	log.ID = uuid.New()
	log.Seq = r.db.seq
	log.CreatedAt = r.db.tick()
	r.db.logs = append(r.db.logs, log)
	r.db.journal = append(r.db.journal, "append "+string(log.Action))
	return &log, nil
}

func (r fakeLogRepo) ListByEntityType(ctx context.Context, entityType entities.EntityType) ([]entities.ActivityLog, error) {
	logs := r.db.allLogs()
	out := logs[:0]
	for _, l := range logs {
		if l.EntityType == entityType {
			out = append(out, l)
		}
	}
	slices.Reverse(out)
	return out, nil
}

type fakeProfileRepo struct {
	repositories.ProfileRepositoryInterface
	db *fakeDB
}

func (r fakeProfileRepo) FindProfilesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entities.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failProfiles != nil {
		return nil, r.db.failProfiles
	}
	out := make(map[uuid.UUID]entities.Profile)
	for _, id := range ids {
		if p, ok := r.db.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r fakeProfileRepo) FindProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return &p, nil
}

func (r fakeProfileRepo) CreateProfile(ctx context.Context, tx pgx.Tx, profile entities.Profile) (*entities.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.profiles {
		if p.Username == profile.Username {
			return nil, apperrors.ErrConflict
		}
	}
	profile.UpdatedAt = r.db.tick()
	r.db.profiles[profile.ID] = profile
	return &profile, nil
}

func (r fakeProfileRepo) UpdateProfile(ctx context.Context, profile entities.Profile) (*entities.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.profiles[profile.ID]; !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	profile.UpdatedAt = r.db.tick()
	r.db.profiles[profile.ID] = profile
	return &profile, nil
}

func (r fakeProfileRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL *string) (*entities.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	p.AvatarURL = avatarURL
	r.db.profiles[id] = p
	return &p, nil
}

type fakeUserRepo struct{ db *fakeDB }

func (r fakeUserRepo) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == user.Email {
			return nil, apperrors.ErrConflict
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = r.db.tick()
	r.db.users[user.ID] = user
	return &user, nil
}

func (r fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r fakeUserRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.PasswordHash = passwordHash
	r.db.users[id] = u
	return nil
}

type fakeFloorRepo struct{ db *fakeDB }

func (r fakeFloorRepo) CreateFloor(ctx context.Context, floor entities.Floor) (*entities.Floor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, f := range r.db.floors {
		if f.FloorNumber == floor.FloorNumber {
			return nil, apperrors.ErrConflict
		}
	}
	floor.ID = uuid.New()
	floor.CreatedAt = r.db.tick()
	r.db.floors[floor.ID] = floor
	return &floor, nil
}

func (r fakeFloorRepo) FindFloor(ctx context.Context, id uuid.UUID) (*entities.Floor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f, ok := r.db.floors[id]
	if !ok {
		return nil, apperrors.ErrFloorNotFound
	}
	return &f, nil
}

func (r fakeFloorRepo) ListFloorsWithRooms(ctx context.Context) ([]entities.Floor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	floors := make([]entities.Floor, 0, len(r.db.floors))
	for _, f := range r.db.floors {
		f.Rooms = []entities.Room{}
		for _, room := range r.db.rooms {
			if room.FloorID == f.ID {
				f.Rooms = append(f.Rooms, room)
			}
		}
		slices.SortFunc(f.Rooms, func(a, b entities.Room) int { return strings.Compare(a.RoomNumber, b.RoomNumber) })
		floors = append(floors, f)
	}
	slices.SortFunc(floors, func(a, b entities.Floor) int { return a.FloorNumber - b.FloorNumber })
	return floors, nil
}

// fakeCacheRepo mirrors the redis commands the services use.
type fakeCacheRepo struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (c *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = fmt.Sprint(value)
	c.ttls[key] = expiration
	return nil
}

func (c *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		delete(c.ttls, k)
	}
	return nil
}

func (c *fakeCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttls[key] = expiration
	return nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (b *recordingBus) Publish(ctx context.Context, e eventbus.Event) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

func (b *recordingBus) published() []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.events)
}

func newTestCache() *querycache.Cache {
	return querycache.New(querycache.NewMemoryStore(), time.Minute, zap.NewNop())
}
