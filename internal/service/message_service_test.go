package service

import (
	"errors"
	"sort"
	"testing"
	"time"

	"volunteerhub/internal/models"

	"gorm.io/gorm"
)

type mockMessageStore struct {
	messages []models.Message
	nextID   uint
	now      time.Time
}

func newMockMessageStore() *mockMessageStore {
	return &mockMessageStore{nextID: 1, now: time.Unix(1700000000, 0)}
}

func (m *mockMessageStore) Create(msg *models.Message) error {
	msg.ID = m.nextID
	m.nextID++
	m.now = m.now.Add(time.Second)
	msg.CreatedAt = m.now
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockMessageStore) Thread(userID, otherID uint) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.messages {
		if (msg.SenderID == userID && msg.ReceiverID == otherID) ||
			(msg.SenderID == otherID && msg.ReceiverID == userID) {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockMessageStore) MarkThreadRead(receiverID, senderID uint) error {
	for i := range m.messages {
		if m.messages[i].ReceiverID == receiverID && m.messages[i].SenderID == senderID {
			m.messages[i].Read = true
		}
	}
	return nil
}

func (m *mockMessageStore) CounterpartIDs(userID uint) ([]uint, error) {
	seen := make(map[uint]struct{})
	var ids []uint
	for _, msg := range m.messages {
		var other uint
		if msg.SenderID == userID {
			other = msg.ReceiverID
		} else if msg.ReceiverID == userID {
			other = msg.SenderID
		} else {
			continue
		}
		if _, ok := seen[other]; !ok {
			seen[other] = struct{}{}
			ids = append(ids, other)
		}
	}
	return ids, nil
}

func (m *mockMessageStore) UnreadCountFrom(receiverID, senderID uint) (int64, error) {
	var c int64
	for _, msg := range m.messages {
		if msg.ReceiverID == receiverID && msg.SenderID == senderID && !msg.Read {
			c++
		}
	}
	return c, nil
}

type mockUserStore struct {
	users map[uint]*models.User
}

func (m *mockUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserStore) ListByIDs(ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

type delivery struct {
	receiverID uint
	senderID   uint
}

type mockPusher struct {
	deliveries []delivery
	online     map[uint]bool
}

func (m *mockPusher) DeliverMessage(receiverID, senderID uint, payload interface{}) {
	m.deliveries = append(m.deliveries, delivery{receiverID: receiverID, senderID: senderID})
}

func (m *mockPusher) IsOnline(userID uint) bool { return m.online[userID] }

type mockMsgNotifier struct {
	received []uint
}

func (m *mockMsgNotifier) MessageReceived(receiverID uint, senderName string, messageID uint) {
	m.received = append(m.received, receiverID)
}

func newMessageFixture() (*MessageService, *mockMessageStore, *mockPusher, *mockMsgNotifier) {
	store := newMockMessageStore()
	users := &mockUserStore{users: map[uint]*models.User{
		1: {ID: 1, Name: "Alice", Role: "volunteer"},
		2: {ID: 2, Name: "Bram", Role: "ngo", OrganizationName: "Green Earth"},
		3: {ID: 3, Name: "Cleo", Role: "volunteer"},
	}}
	pusher := &mockPusher{online: make(map[uint]bool)}
	notifier := &mockMsgNotifier{}
	return NewMessageService(store, users, pusher, notifier), store, pusher, notifier
}

func TestSendEmptyMessage(t *testing.T) {
	svc, store, _, _ := newMessageFixture()

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Send(1, 2, content); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q) err = %v, want ErrEmptyMessage", content, err)
		}
	}
	if len(store.messages) != 0 {
		t.Errorf("empty sends created %d messages", len(store.messages))
	}
}

func TestSendUnknownReceiver(t *testing.T) {
	svc, _, _, _ := newMessageFixture()

	if _, err := svc.Send(1, 99, "hello"); !errors.Is(err, ErrReceiverNotFound) {
		t.Fatalf("err = %v, want ErrReceiverNotFound", err)
	}
}

func TestSendDeliversToReceiverOnly(t *testing.T) {
	svc, store, pusher, _ := newMessageFixture()
	pusher.online[2] = true

	m, err := svc.Send(1, 2, "  hello  ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if m.Read {
		t.Error("new message created with read=true")
	}
	if m.Content != "hello" {
		t.Errorf("content = %q, want trimmed %q", m.Content, "hello")
	}
	if len(store.messages) != 1 {
		t.Fatalf("store has %d messages", len(store.messages))
	}
	if len(pusher.deliveries) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(pusher.deliveries))
	}
	d := pusher.deliveries[0]
	if d.receiverID != 2 || d.senderID != 1 {
		t.Errorf("delivery = %+v, want receiver 2 from sender 1", d)
	}
}

func TestSendNotifiesOfflineReceiver(t *testing.T) {
	svc, _, pusher, notifier := newMessageFixture()

	if _, err := svc.Send(1, 2, "hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(notifier.received) != 1 || notifier.received[0] != 2 {
		t.Errorf("offline receiver not notified: %v", notifier.received)
	}

	pusher.online[2] = true
	if _, err := svc.Send(1, 2, "hi again"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(notifier.received) != 1 {
		t.Errorf("online receiver notified: %v", notifier.received)
	}
}

func TestLoadThreadOrderingAndScope(t *testing.T) {
	svc, _, _, _ := newMessageFixture()

	svc.Send(1, 2, "first")
	svc.Send(2, 1, "second")
	svc.Send(1, 2, "third")
	svc.Send(1, 3, "other conversation")

	thread, err := svc.LoadThread(2, 1)
	if err != nil {
		t.Fatalf("LoadThread: %v", err)
	}
	if len(thread) != 3 {
		t.Fatalf("thread has %d messages, want 3", len(thread))
	}
	for i := 1; i < len(thread); i++ {
		if thread[i].CreatedAt.Before(thread[i-1].CreatedAt) {
			t.Errorf("thread out of order at %d", i)
		}
	}
	for _, m := range thread {
		ok := (m.SenderID == 1 && m.ReceiverID == 2) || (m.SenderID == 2 && m.ReceiverID == 1)
		if !ok {
			t.Errorf("thread contains foreign message %+v", m)
		}
	}
}

func TestLoadThreadMarksRead(t *testing.T) {
	svc, store, _, _ := newMessageFixture()

	svc.Send(1, 2, "hello")
	svc.Send(1, 2, "anyone there?")
	svc.Send(2, 1, "reply")

	if unread, _ := store.UnreadCountFrom(2, 1); unread != 2 {
		t.Fatalf("unread before load = %d, want 2", unread)
	}
	if _, err := svc.LoadThread(2, 1); err != nil {
		t.Fatalf("LoadThread: %v", err)
	}
	if unread, _ := store.UnreadCountFrom(2, 1); unread != 0 {
		t.Errorf("unread after load = %d, want 0", unread)
	}
	// The counterpart's own inbox is untouched.
	if unread, _ := store.UnreadCountFrom(1, 2); unread != 1 {
		t.Errorf("sender's unread = %d, want 1", unread)
	}
	// Re-loading an already-read thread is a no-op.
	if _, err := svc.LoadThread(2, 1); err != nil {
		t.Fatalf("second LoadThread: %v", err)
	}
	if unread, _ := store.UnreadCountFrom(2, 1); unread != 0 {
		t.Errorf("unread after reload = %d", unread)
	}
}

func TestConversationsDedup(t *testing.T) {
	svc, _, _, _ := newMessageFixture()

	svc.Send(1, 2, "to ngo")
	svc.Send(2, 1, "from ngo")
	svc.Send(1, 3, "to cleo")

	convs, err := svc.Conversations(1)
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("conversations = %d, want 2 (deduplicated)", len(convs))
	}
	unreadByUser := make(map[uint]int64)
	for _, conv := range convs {
		unreadByUser[conv.User.ID] = conv.UnreadCount
	}
	if unreadByUser[2] != 1 {
		t.Errorf("unread from ngo = %d, want 1", unreadByUser[2])
	}
	if unreadByUser[3] != 0 {
		t.Errorf("unread from cleo = %d, want 0", unreadByUser[3])
	}
}
