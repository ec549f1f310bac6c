package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorlink/api/models"
	"github.com/tutorlink/api/utils"
)

const messagePreviewLimit = 50

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// CanMessage reports whether two users are allowed to chat: they must share a
// booking, an assignment, or an existing message thread.
func (s *ChatService) CanMessage(userA, userB uuid.UUID) (bool, error) {
	var bookings int64
	err := s.db.Model(&models.Booking{}).
		Where("(student_id = ? AND tutor_id = ?) OR (student_id = ? AND tutor_id = ?)",
			userA, userB, userB, userA).
		Count(&bookings).Error
	if err != nil {
		return false, err
	}
	if bookings > 0 {
		return true, nil
	}

	for _, pair := range [][2]uuid.UUID{{userA, userB}, {userB, userA}} {
		var profile models.TutorProfile
		err := s.db.First(&profile, "user_id = ?", pair[0]).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return false, err
		}
		if profile.HasAssignedStudent(pair[1]) {
			return true, nil
		}
	}

	var messages int64
	err = s.db.Model(&models.ChatMessage{}).
		Where("chat_id = ?", utils.ChatID(userA, userB)).
		Count(&messages).Error
	if err != nil {
		return false, err
	}
	return messages > 0, nil
}

func (s *ChatService) SendMessage(senderID, receiverID uuid.UUID, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", ErrValidation)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrValidation)
	}

	var sender, receiver models.User
	if err := s.db.First(&sender, "id = ?", senderID).Error; err != nil {
		return nil, fmt.Errorf("%w: sender %s", ErrNotFound, senderID)
	}
	if err := s.db.First(&receiver, "id = ?", receiverID).Error; err != nil {
		return nil, fmt.Errorf("%w: recipient %s", ErrNotFound, receiverID)
	}

	allowed, err := s.CanMessage(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: no booking or assignment links these users", ErrUnauthorized)
	}

	message := models.ChatMessage{
		ChatID:     utils.ChatID(senderID, receiverID),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		preview := message.Text
		if len(preview) > messagePreviewLimit {
			preview = preview[:messagePreviewLimit] + "..."
		}
		link := "/messages/" + message.ChatID
		notification := models.Notification{
			UserID:  receiver.ID,
			Title:   fmt.Sprintf("New message from %s", sender.FullName),
			Message: preview,
			Type:    models.NotificationGeneric,
			Link:    &link,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	return &message, nil
}

// ListThread returns a thread's messages oldest-first and marks the caller's
// received messages read, mirroring the chat screen's open-thread behavior.
func (s *ChatService) ListThread(chatID string, userID uuid.UUID) ([]models.ChatMessage, error) {
	if !threadHasParticipant(chatID, userID) {
		return nil, fmt.Errorf("%w: not a participant of this thread", ErrUnauthorized)
	}

	var messages []models.ChatMessage
	err := s.db.
		Where("chat_id = ?", chatID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}

	err = s.db.Model(&models.ChatMessage{}).
		Where("chat_id = ? AND receiver_id = ? AND read = ?", chatID, userID, false).
		Update("read", true).Error
	if err != nil {
		return nil, fmt.Errorf("mark thread read: %w", err)
	}
	for i := range messages {
		if messages[i].ReceiverID == userID {
			messages[i].Read = true
		}
	}

	return messages, nil
}

type Conversation struct {
	ChatID          string              `json:"chat_id"`
	OtherUserID     uuid.UUID           `json:"other_user_id"`
	OtherUserName   string              `json:"other_user_name"`
	OtherUserAvatar *string             `json:"other_user_avatar,omitempty"`
	OtherUserRole   string              `json:"other_user_role"`
	LastMessage     *models.ChatMessage `json:"last_message,omitempty"`
	UnreadCount     int64               `json:"unread_count"`
}

// ListConversations builds one summary per contact the user may chat with,
// ordered by last activity. Contacts without messages sort last.
func (s *ChatService) ListConversations(userID uuid.UUID) ([]Conversation, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	contactIDs, err := s.contactIDsFor(user)
	if err != nil {
		return nil, err
	}

	conversations := make([]Conversation, 0, len(contactIDs))
	for _, contactID := range contactIDs {
		var other models.User
		if err := s.db.First(&other, "id = ?", contactID).Error; err != nil {
			continue
		}

		chatID := utils.ChatID(userID, other.ID)

		var last models.ChatMessage
		hasLast := true
		err := s.db.Where("chat_id = ?", chatID).Order("created_at desc").First(&last).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			hasLast = false
		}

		var unread int64
		err = s.db.Model(&models.ChatMessage{}).
			Where("chat_id = ? AND receiver_id = ? AND read = ?", chatID, userID, false).
			Count(&unread).Error
		if err != nil {
			return nil, err
		}

		conversation := Conversation{
			ChatID:          chatID,
			OtherUserID:     other.ID,
			OtherUserName:   other.FullName,
			OtherUserAvatar: other.AvatarURL,
			OtherUserRole:   other.Role,
			UnreadCount:     unread,
		}
		if hasLast {
			conversation.LastMessage = &last
		}
		conversations = append(conversations, conversation)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		a, b := conversations[i].LastMessage, conversations[j].LastMessage
		switch {
		case a != nil && b != nil:
			return a.CreatedAt.After(b.CreatedAt)
		case a != nil:
			return true
		default:
			return false
		}
	})

	return conversations, nil
}

// contactIDsFor collects the ids a user is allowed to converse with: booking
// counterparties, assignment links, and anyone from an existing thread.
func (s *ChatService) contactIDsFor(user models.User) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var contacts []uuid.UUID
	add := func(id uuid.UUID) {
		if id != user.ID && !seen[id] {
			seen[id] = true
			contacts = append(contacts, id)
		}
	}

	var bookings []models.Booking
	err := s.db.
		Where("student_id = ? OR tutor_id = ?", user.ID, user.ID).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		add(b.StudentID)
		add(b.TutorID)
	}

	if user.Role == models.RoleTutor {
		var profile models.TutorProfile
		err := s.db.First(&profile, "user_id = ?", user.ID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		for _, raw := range profile.AssignedStudentIDs {
			if id, err := uuid.Parse(raw); err == nil {
				add(id)
			}
		}
	} else {
		var profiles []models.TutorProfile
		if err := s.db.Find(&profiles).Error; err != nil {
			return nil, err
		}
		for _, p := range profiles {
			if p.HasAssignedStudent(user.ID) {
				add(p.UserID)
			}
		}
	}

	var messages []models.ChatMessage
	err = s.db.
		Where("sender_id = ? OR receiver_id = ?", user.ID, user.ID).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for _, m := range messages {
		add(m.SenderID)
		add(m.ReceiverID)
	}

	return contacts, nil
}

func threadHasParticipant(chatID string, userID uuid.UUID) bool {
	parts := strings.SplitN(chatID, "_", 2)
	if len(parts) != 2 {
		return false
	}
	id := userID.String()
	return parts[0] == id || parts[1] == id
}
