package usecase

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendora/internal/domain/entity"
	"vendora/pkg/errors"
)

type fakeMessageRepo struct {
	messages map[string][]*entity.Message
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string][]*entity.Message)}
}

func (r *fakeMessageRepo) Append(ctx context.Context, message *entity.Message) error {
	r.seq++
	if message.ID == "" {
		message.ID = fmt.Sprintf("msg-%d", r.seq)
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], message)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	msgs := append([]*entity.Message(nil), r.messages[conversationID]...)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (r *fakeMessageRepo) MarkReadFrom(ctx context.Context, conversationID, excludeSenderID string) (int64, error) {
	var count int64
	for _, msg := range r.messages[conversationID] {
		if !msg.IsRead && msg.SenderID != excludeSenderID {
			msg.IsRead = true
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) Delete(ctx context.Context, conversationID, messageID string) error {
	msgs := r.messages[conversationID]
	for i, msg := range msgs {
		if msg.ID == messageID {
			r.messages[conversationID] = append(msgs[:i], msgs[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

type fakeConversationRepo struct {
	convs       map[string]*entity.Conversation
	messageRepo *fakeMessageRepo
	seq         int
	failTouch   bool
}

func newFakeConversationRepo(messageRepo *fakeMessageRepo) *fakeConversationRepo {
	return &fakeConversationRepo{
		convs:       make(map[string]*entity.Conversation),
		messageRepo: messageRepo,
	}
}

func (r *fakeConversationRepo) Create(ctx context.Context, conv *entity.Conversation) error {
	r.seq++
	if conv.ID == "" {
		conv.ID = fmt.Sprintf("conv-%d", r.seq)
	}
	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	r.convs[conv.ID] = conv
	return nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	conv, ok := r.convs[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	copied := *conv
	return &copied, nil
}

func (r *fakeConversationRepo) FindByParticipants(ctx context.Context, idA, idB, productID string) (*entity.Conversation, error) {
	for _, conv := range r.convs {
		samePair := (conv.InitiatorID == idA && conv.CounterpartID == idB) ||
			(conv.InitiatorID == idB && conv.CounterpartID == idA)
		if samePair && conv.ProductID == productID {
			copied := *conv
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *fakeConversationRepo) ListByParticipant(ctx context.Context, participantID string) ([]*entity.Conversation, error) {
	var result []*entity.Conversation
	for _, conv := range r.convs {
		if conv.HasParticipant(participantID) {
			copied := *conv
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastMessageAt.After(result[j].LastMessageAt)
	})
	return result, nil
}

func (r *fakeConversationRepo) TouchOnMessage(ctx context.Context, id string, lastMessageAt time.Time, content, senderID, incrementCounterFor string) error {
	if r.failTouch {
		return errors.Internal("touch failed", nil)
	}
	conv, ok := r.convs[id]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	conv.LastMessage = content
	conv.LastSenderID = senderID
	conv.LastMessageAt = lastMessageAt
	switch incrementCounterFor {
	case conv.InitiatorID:
		conv.InitiatorUnread++
	case conv.CounterpartID:
		conv.CounterpartUnread++
	}
	return nil
}

func (r *fakeConversationRepo) ResetUnreadFor(ctx context.Context, id, participantID string) error {
	conv, ok := r.convs[id]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	switch participantID {
	case conv.InitiatorID:
		conv.InitiatorUnread = 0
	case conv.CounterpartID:
		conv.CounterpartUnread = 0
	default:
		return errors.Forbidden("Not a participant of this conversation", nil)
	}
	return nil
}

func (r *fakeConversationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.convs[id]; !ok {
		return errors.NotFound("Conversation", nil)
	}
	delete(r.convs, id)
	delete(r.messageRepo.messages, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.User, int64, error) {
	var result []*entity.User
	for _, user := range r.users {
		if user.Role == role {
			result = append(result, user)
		}
	}
	return result, int64(len(result)), nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return product, nil
}

func (r *fakeProductRepo) List(ctx context.Context, filter map[string]interface{}, sortBy string, limit, offset int) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) SoftDelete(ctx context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) IncrementViews(ctx context.Context, id string) error { return nil }

func (r *fakeProductRepo) SearchByTitle(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) ListByVendorID(ctx context.Context, vendorID string, status string, limit, offset int) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}

type fakePusher struct {
	pushes map[string][][]byte
}

func (p *fakePusher) SendToUser(userID string, message []byte) {
	if p.pushes == nil {
		p.pushes = make(map[string][][]byte)
	}
	p.pushes[userID] = append(p.pushes[userID], message)
}

type conversationFixture struct {
	uc       *ConversationUseCase
	convRepo *fakeConversationRepo
	msgRepo  *fakeMessageRepo
	pusher   *fakePusher
}

func newConversationFixture() *conversationFixture {
	msgRepo := newFakeMessageRepo()
	convRepo := newFakeConversationRepo(msgRepo)
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"alice": {ID: "alice", Username: "alice", Role: "user"},
		"bob":   {ID: "bob", Username: "bob", Role: "vendor", StoreName: "Bob's Store"},
		"carol": {ID: "carol", Username: "carol", Role: "user"},
	}}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", VendorID: "bob", Title: "Mechanical Keyboard", Price: 75, Status: "active"},
		"prod-2": {ID: "prod-2", VendorID: "bob", Title: "Vertical Mouse", Price: 40, Status: "active"},
	}}
	pusher := &fakePusher{}

	return &conversationFixture{
		uc:       NewConversationUseCase(convRepo, msgRepo, userRepo, productRepo, pusher),
		convRepo: convRepo,
		msgRepo:  msgRepo,
		pusher:   pusher,
	}
}

func TestStartConversationCreatesThread(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, created, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{
		CounterpartID: "bob",
		ProductID:     "prod-1",
	})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", conv.InitiatorID)
	assert.Equal(t, "bob", conv.CounterpartID)
	assert.Equal(t, "prod-1", conv.ProductID)
	assert.Equal(t, 0, conv.InitiatorUnread)
	assert.Equal(t, 0, conv.CounterpartUnread)
	assert.Equal(t, "Chat with bob", conv.Subject)
	require.NotNil(t, conv.Product)
	assert.Equal(t, "Mechanical Keyboard", conv.Product.Title)
}

func TestStartConversationIsIdempotent(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	first, created, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob", ProductID: "prod-1"})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob", ProductID: "prod-1"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestStartConversationIgnoresParticipantOrder(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	first, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob", ProductID: "prod-1"})
	require.NoError(t, err)

	second, created, err := f.uc.StartConversation(ctx, "bob", StartConversationInput{CounterpartID: "alice", ProductID: "prod-1"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestStartConversationSeparatesProductThreads(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	withProduct, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob", ProductID: "prod-1"})
	require.NoError(t, err)

	otherProduct, created, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob", ProductID: "prod-2"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, withProduct.ID, otherProduct.ID)

	general, created, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, withProduct.ID, general.ID)
}

func TestStartConversationRejectsSelf(t *testing.T) {
	f := newConversationFixture()

	_, _, err := f.uc.StartConversation(context.Background(), "alice", StartConversationInput{CounterpartID: "alice"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestStartConversationUnknownCounterpart(t *testing.T) {
	f := newConversationFixture()

	_, _, err := f.uc.StartConversation(context.Background(), "alice", StartConversationInput{CounterpartID: "nobody"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestStartConversationUnknownProduct(t *testing.T) {
	f := newConversationFixture()

	_, _, err := f.uc.StartConversation(context.Background(), "alice", StartConversationInput{CounterpartID: "bob", ProductID: "missing"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestStartConversationWithInitialMessage(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, created, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{
		CounterpartID:  "bob",
		ProductID:      "prod-1",
		InitialMessage: "Is this still available?",
	})

	require.NoError(t, err)
	assert.True(t, created)

	stored, err := f.convRepo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CounterpartUnread)
	assert.Equal(t, 0, stored.InitiatorUnread)
	assert.Equal(t, "Is this still available?", stored.LastMessage)

	messages, err := f.msgRepo.ListByConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "alice", messages[0].SenderID)
}

func TestSendMessageIncrementsRecipientUnread(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "alice", conv.ID, SendMessageInput{Content: "hello"})
	require.NoError(t, err)
	_, err = f.uc.SendMessage(ctx, "alice", conv.ID, SendMessageInput{Content: "anyone there?"})
	require.NoError(t, err)

	stored, err := f.convRepo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CounterpartUnread)
	assert.Equal(t, 0, stored.InitiatorUnread)
	assert.Equal(t, "anyone there?", stored.LastMessage)
	assert.Equal(t, "alice", stored.LastSenderID)

	// reply flows the other way
	_, err = f.uc.SendMessage(ctx, "bob", conv.ID, SendMessageInput{Content: "yes!"})
	require.NoError(t, err)

	stored, err = f.convRepo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CounterpartUnread)
	assert.Equal(t, 1, stored.InitiatorUnread)
}

func TestSendMessagePushesToRecipient(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "alice", conv.ID, SendMessageInput{Content: "ping"})
	require.NoError(t, err)

	assert.Len(t, f.pusher.pushes["bob"], 1)
	assert.Empty(t, f.pusher.pushes["alice"])
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err = f.uc.SendMessage(ctx, "alice", conv.ID, SendMessageInput{Content: content})
		require.Error(t, err)
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	}
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "carol", conv.ID, SendMessageInput{Content: "let me in"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessageUnknownConversation(t *testing.T) {
	f := newConversationFixture()

	_, err := f.uc.SendMessage(context.Background(), "alice", "missing", SendMessageInput{Content: "hi"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSendMessageRollsBackWhenCounterUpdateFails(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)

	f.convRepo.failTouch = true
	_, err = f.uc.SendMessage(ctx, "alice", conv.ID, SendMessageInput{Content: "doomed"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))

	messages, err := f.msgRepo.ListByConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestMessagesOrderedOldestFirst(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three"} {
		_, err = f.uc.SendMessage(ctx, "alice", conv.ID, SendMessageInput{Content: content})
		require.NoError(t, err)
	}

	messages, err := f.uc.ListMessages(ctx, "alice", conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "two", messages[1].Content)
	assert.Equal(t, "three", messages[2].Content)
}

func TestMarkConversationRead(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "alice", conv.ID, SendMessageInput{Content: "hello"})
	require.NoError(t, err)
	_, err = f.uc.SendMessage(ctx, "bob", conv.ID, SendMessageInput{Content: "hi back"})
	require.NoError(t, err)

	updated, err := f.uc.MarkConversationRead(ctx, "bob", conv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	stored, err := f.convRepo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CounterpartUnread)
	// alice's side is untouched
	assert.Equal(t, 1, stored.InitiatorUnread)

	// repeat is a no-op
	updated, err = f.uc.MarkConversationRead(ctx, "bob", conv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestMarkConversationReadRejectsNonParticipant(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)

	_, err = f.uc.MarkConversationRead(ctx, "carol", conv.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeleteConversationCascades(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob", InitialMessage: "hi"})
	require.NoError(t, err)

	err = f.uc.DeleteConversation(ctx, "bob", conv.ID)
	require.NoError(t, err)

	_, err = f.uc.GetConversation(ctx, conv.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Empty(t, f.msgRepo.messages[conv.ID])
}

func TestDeleteConversationRejectsNonParticipant(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob"})
	require.NoError(t, err)

	err = f.uc.DeleteConversation(ctx, "carol", conv.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = f.uc.GetConversation(ctx, conv.ID)
	assert.NoError(t, err)
}

func TestListConversationsSortedByActivity(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	first, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob", ProductID: "prod-1"})
	require.NoError(t, err)
	second, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "carol"})
	require.NoError(t, err)

	// activity on the older thread moves it to the front
	time.Sleep(time.Millisecond)
	_, err = f.uc.SendMessage(ctx, "alice", first.ID, SendMessageInput{Content: "bump"})
	require.NoError(t, err)

	convs, err := f.uc.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, first.ID, convs[0].ID)
	assert.Equal(t, second.ID, convs[1].ID)

	require.NotNil(t, convs[0].OtherUser)
	assert.Equal(t, "bob", convs[0].OtherUser.ID)
	require.NotNil(t, convs[0].Product)
	assert.Equal(t, "prod-1", convs[0].Product.ID)
	assert.Nil(t, convs[1].Product)
}

func TestGetConversationIncludesHistory(t *testing.T) {
	f := newConversationFixture()
	ctx := context.Background()

	conv, _, err := f.uc.StartConversation(ctx, "alice", StartConversationInput{CounterpartID: "bob", InitialMessage: "hi"})
	require.NoError(t, err)
	_, err = f.uc.SendMessage(ctx, "bob", conv.ID, SendMessageInput{Content: "hey"})
	require.NoError(t, err)

	detail, err := f.uc.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, detail.Messages, 2)
	assert.Equal(t, "alice", detail.Messages[0].SenderID)
	assert.Equal(t, "bob", detail.Messages[1].SenderID)
}
