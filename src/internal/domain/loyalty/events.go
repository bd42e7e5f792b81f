package loyalty

import (
	"time"

	"github.com/google/uuid"
)

// 事件類型
const (
	EventTypeAccountCreated = "loyalty.account_created"
	EventTypePointsEarned   = "loyalty.points_earned"
	EventTypePointsRedeemed = "loyalty.points_redeemed"
	EventTypePointsForfeit  = "loyalty.points_forfeited"
)

// baseEvent 事件共用欄位
type baseEvent struct {
	eventID    string
	accountID  AccountID
	userID     UserID
	occurredAt time.Time
}

func newBaseEvent(accountID AccountID, userID UserID) baseEvent {
	return baseEvent{
		eventID:    uuid.New().String(),
		accountID:  accountID,
		userID:     userID,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e baseEvent) EventID() string { return e.eventID }

// OccurredAt 實現 DomainEvent 介面
func (e baseEvent) OccurredAt() time.Time { return e.occurredAt }

// AggregateID 實現 DomainEvent 介面
func (e baseEvent) AggregateID() string { return e.accountID.String() }

// AccountID 獲取帳戶 ID
func (e baseEvent) AccountID() AccountID { return e.accountID }

// UserID 獲取使用者 ID
func (e baseEvent) UserID() UserID { return e.userID }

// ===========================
// AccountCreated
// ===========================

// AccountCreatedEvent 積分帳戶創建事件
type AccountCreatedEvent struct {
	baseEvent
}

// NewAccountCreatedEvent 創建帳戶創建事件
func NewAccountCreatedEvent(accountID AccountID, userID UserID) *AccountCreatedEvent {
	return &AccountCreatedEvent{baseEvent: newBaseEvent(accountID, userID)}
}

// EventType 實現 DomainEvent 介面
func (e *AccountCreatedEvent) EventType() string { return EventTypeAccountCreated }

// ===========================
// PointsEarned
// ===========================

// PointsEarnedEvent 積分已獲得事件
type PointsEarnedEvent struct {
	baseEvent
	amount      PointsAmount
	txType      TransactionType
	description string
}

// NewPointsEarnedEvent 創建積分已獲得事件
func NewPointsEarnedEvent(
	accountID AccountID,
	userID UserID,
	amount PointsAmount,
	txType TransactionType,
	description string,
) *PointsEarnedEvent {
	return &PointsEarnedEvent{
		baseEvent:   newBaseEvent(accountID, userID),
		amount:      amount,
		txType:      txType,
		description: description,
	}
}

// EventType 實現 DomainEvent 介面
func (e *PointsEarnedEvent) EventType() string { return EventTypePointsEarned }

// Amount 獲取積分數量
func (e *PointsEarnedEvent) Amount() PointsAmount { return e.amount }

// TransactionType 獲取流水類型
func (e *PointsEarnedEvent) TransactionType() TransactionType { return e.txType }

// Description 獲取描述
func (e *PointsEarnedEvent) Description() string { return e.description }

// ===========================
// PointsRedeemed
// ===========================

// PointsRedeemedEvent 積分已折抵事件
type PointsRedeemedEvent struct {
	baseEvent
	amount      PointsAmount
	description string
}

// NewPointsRedeemedEvent 創建積分已折抵事件
func NewPointsRedeemedEvent(accountID AccountID, userID UserID, amount PointsAmount, description string) *PointsRedeemedEvent {
	return &PointsRedeemedEvent{
		baseEvent:   newBaseEvent(accountID, userID),
		amount:      amount,
		description: description,
	}
}

// EventType 實現 DomainEvent 介面
func (e *PointsRedeemedEvent) EventType() string { return EventTypePointsRedeemed }

// Amount 獲取積分數量
func (e *PointsRedeemedEvent) Amount() PointsAmount { return e.amount }

// Description 獲取描述
func (e *PointsRedeemedEvent) Description() string { return e.description }

// ===========================
// PointsForfeited
// ===========================

// PointsForfeitedEvent 積分已歸零事件
type PointsForfeitedEvent struct {
	baseEvent
	amount PointsAmount
	reason string
}

// NewPointsForfeitedEvent 創建積分已歸零事件
func NewPointsForfeitedEvent(accountID AccountID, userID UserID, amount PointsAmount, reason string) *PointsForfeitedEvent {
	return &PointsForfeitedEvent{
		baseEvent: newBaseEvent(accountID, userID),
		amount:    amount,
		reason:    reason,
	}
}

// EventType 實現 DomainEvent 介面
func (e *PointsForfeitedEvent) EventType() string { return EventTypePointsForfeit }

// Amount 獲取歸零的積分
func (e *PointsForfeitedEvent) Amount() PointsAmount { return e.amount }

// Reason 獲取歸零原因
func (e *PointsForfeitedEvent) Reason() string { return e.reason }
