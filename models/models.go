package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Family is a top-level payment method category
type Family string

const (
	FamilyCard   Family = "card"
	FamilyCrypto Family = "crypto"
)

// CardFlag selects the card variant
type CardFlag string

const (
	CardFlagVisa   CardFlag = "visa"
	CardFlagMaster CardFlag = "master"
	CardFlagAmex   CardFlag = "amex"
)

// Coin selects the crypto variant
type Coin string

const (
	CoinBitcoin  Coin = "bitcoin"
	CoinEthereum Coin = "ethereum"
)

// PaymentParams is the view of a payment shared by every family
type PaymentParams interface {
	Family() Family
	// Discriminator is the field value that picks the variant within the family.
	Discriminator() string
	Amount() decimal.Decimal
	Payer() string
}

// PaymentRequest carries exactly one payment kind
type PaymentRequest struct {
	CardInfo   *CardPayment   `json:"cardInfo,omitempty"`
	CryptoInfo *CryptoPayment `json:"cryptoInfo,omitempty"`
}

// CardPayment represents a credit card payment
type CardPayment struct {
	CardNumber string          `json:"cardNumber" validate:"required"`
	CardFlag   CardFlag        `json:"cardFlag" validate:"required"`
	Value      decimal.Decimal `json:"value" validate:"required"`
	UserID     string          `json:"userId" validate:"required"`
}

func (p *CardPayment) Family() Family          { return FamilyCard }
func (p *CardPayment) Discriminator() string   { return string(p.CardFlag) }
func (p *CardPayment) Amount() decimal.Decimal { return p.Value }
func (p *CardPayment) Payer() string           { return p.UserID }

// CryptoPayment represents a crypto wallet payment
type CryptoPayment struct {
	WalletNumber string          `json:"walletNumber" validate:"required"`
	Coin         Coin            `json:"coin" validate:"required"`
	Value        decimal.Decimal `json:"value" validate:"required"`
	UserID       string          `json:"userId" validate:"required"`
}

func (p *CryptoPayment) Family() Family          { return FamilyCrypto }
func (p *CryptoPayment) Discriminator() string   { return string(p.Coin) }
func (p *CryptoPayment) Amount() decimal.Decimal { return p.Value }
func (p *CryptoPayment) Payer() string           { return p.UserID }

// Stage is the position of a payment call in the protocol
type Stage string

const (
	StageCreated      Stage = "created"
	StageFieldChecked Stage = "field_checked"
	StageValidated    Stage = "validated"
	StageExecuted     Stage = "executed"
	StageNotified     Stage = "notified"
)

// PaymentStatusApproved is the only status a completed payment can have
const PaymentStatusApproved = "approved"

// PaymentOutcome represents the result of a completed payment call
type PaymentOutcome struct {
	TransactionID string          `json:"transactionId"`
	Status        string          `json:"status"`
	Family        Family          `json:"family"`
	Method        string          `json:"method"`
	Value         decimal.Decimal `json:"value"`
	UserID        string          `json:"userId"`
	Stage         Stage           `json:"stage"`
	ProcessedAt   time.Time       `json:"processedAt"`
}

// ErrorResponse is the body returned for failed payment calls
type ErrorResponse struct {
	Error         string   `json:"error"`
	Code          string   `json:"code"`
	Fields        []string `json:"fields,omitempty"`
	Discriminator string   `json:"discriminator,omitempty"`
}
