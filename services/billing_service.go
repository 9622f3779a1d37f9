package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kart.link/configs"
	"kart.link/configs/configslog"
	"kart.link/models"
	"kart.link/pkg/queryparams"
	"kart.link/repositories"

	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/invoice"
	stripesub "github.com/stripe/stripe-go/v79/subscription"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

// BillingServiceError özel servis hataları
type BillingServiceError string

func (e BillingServiceError) Error() string { return string(e) }

const (
	ErrBillingUserNotFound    BillingServiceError = "kullanıcı bulunamadı"
	ErrBillingPlanNotFound    BillingServiceError = "plan bulunamadı"
	ErrBillingPlanNotPayable  BillingServiceError = "bu plan için ödeme gerekmiyor"
	ErrBillingNoSubscription  BillingServiceError = "aktif abonelik bulunamadı"
	ErrBillingCheckoutFailed  BillingServiceError = "ödeme sayfası oluşturulamadı"
	ErrBillingCancelFailed    BillingServiceError = "abonelik iptal edilemedi"
	ErrBillingWebhookInvalid  BillingServiceError = "webhook imzası doğrulanamadı"
	ErrBillingWebhookMismatch BillingServiceError = "webhook verisi eşleştirilemedi"
)

// InvoiceSummary fatura geçmişi satırıdır.
type InvoiceSummary struct {
	Number      string
	AmountPaid  int64
	Currency    string
	Status      string
	CreatedAt   time.Time
	HostedURL   string
	DownloadURL string
}

// BillingOverview panelin abonelik sayfası için özet veridir.
type BillingOverview struct {
	Plan           *models.Plan
	Subscription   *models.Subscription
	Invoices       []InvoiceSummary
	AvailablePlans []models.Plan
}

// IBillingService Stripe abonelik işlemleri için arayüz.
type IBillingService interface {
	CreateCheckoutSession(ctx context.Context, userID uint, planID uint) (string, error)
	CancelSubscription(ctx context.Context, userID uint) error
	GetOverview(ctx context.Context, userID uint) (*BillingOverview, error)
	HandleWebhook(payload []byte, signature string) error
}

// BillingService IBillingService arayüzünü uygular. Abonelik durumunun
// kaynağı Stripe'tır; yerel kayıt webhook işleyicisiyle senkron tutulur.
type BillingService struct {
	userRepo repositories.IUserRepository
	planRepo repositories.IPlanRepository
	subRepo  repositories.ISubscriptionRepository
}

// NewBillingService yeni bir BillingService örneği oluşturur.
func NewBillingService() IBillingService {
	return &BillingService{
		userRepo: repositories.NewUserRepository(),
		planRepo: repositories.NewPlanRepository(),
		subRepo:  repositories.NewSubscriptionRepository(),
	}
}

// CreateCheckoutSession kullanıcı için Stripe Checkout oturumu açar ve
// yönlendirme URL'sini döndürür. Kullanıcı kimliği ClientReferenceID ile
// taşınır; webhook tarafında yerel kayıt bu kimlikle eşleştirilir.
func (s *BillingService) CreateCheckoutSession(ctx context.Context, userID uint, planID uint) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", ErrBillingUserNotFound
	}
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return "", ErrBillingPlanNotFound
	}
	if plan.StripePriceID == "" {
		return "", ErrBillingPlanNotPayable
	}

	baseURL := configs.GetAppBaseURL()
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(plan.StripePriceID), Quantity: stripe.Int64(1)},
		},
		CustomerEmail:     stripe.String(user.Email),
		ClientReferenceID: stripe.String(fmt.Sprintf("%d", user.ID)),
		SuccessURL:        stripe.String(baseURL + "/panel/billing?checkout=success"),
		CancelURL:         stripe.String(baseURL + "/panel/billing?checkout=cancel"),
		Metadata: map[string]string{
			"plan_id": fmt.Sprintf("%d", plan.ID),
		},
	}
	// Mevcut Stripe müşterisi varsa yeniden kullanılır.
	if existing, subErr := s.subRepo.FindActiveByUserID(ctx, userID); subErr == nil && existing.StripeCustomerID != "" {
		params.Customer = stripe.String(existing.StripeCustomerID)
		params.CustomerEmail = nil
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		configslog.Log.Error("Stripe checkout oturumu açılamadı",
			zap.Uint("user_id", userID), zap.Uint("plan_id", planID), zap.Error(err))
		return "", ErrBillingCheckoutFailed
	}
	configslog.SLog.Infof("Checkout oturumu açıldı: kullanıcı %d, plan %s", userID, plan.Name)
	return sess.URL, nil
}

// CancelSubscription kullanıcının aktif aboneliğini Stripe tarafında iptal
// eder. Yerel kaydın güncellenmesi webhook'a bırakılır.
func (s *BillingService) CancelSubscription(ctx context.Context, userID uint) error {
	sub, err := s.subRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBillingNoSubscription
		}
		return err
	}
	if _, err := stripesub.Cancel(sub.StripeSubscriptionID, nil); err != nil {
		configslog.Log.Error("Stripe aboneliği iptal edilemedi",
			zap.String("stripe_subscription_id", sub.StripeSubscriptionID), zap.Error(err))
		return ErrBillingCancelFailed
	}
	configslog.SLog.Infof("Abonelik iptali istendi: kullanıcı %d", userID)
	return nil
}

// GetOverview kullanıcının planını, yerel abonelik kaydını ve Stripe fatura
// geçmişini döndürür. Fatura listesi alınamazsa sayfa boş listeyle açılır.
func (s *BillingService) GetOverview(ctx context.Context, userID uint) (*BillingOverview, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrBillingUserNotFound
	}
	plan, err := s.planRepo.FindByID(ctx, user.PlanID)
	if err != nil {
		return nil, ErrBillingPlanNotFound
	}

	overview := &BillingOverview{Plan: plan}
	if plans, _, plansErr := s.planRepo.GetAllPaginated(queryparams.ListParams{
		Page: queryparams.DefaultPage, PerPage: queryparams.DefaultPerPage,
		SortBy: "id", OrderBy: "asc",
	}); plansErr == nil {
		overview.AvailablePlans = plans
	} else {
		configslog.Log.Warn("Plan listesi alınamadı", zap.Error(plansErr))
	}

	sub, err := s.subRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return overview, nil
	}
	overview.Subscription = sub
	overview.Invoices = s.listInvoices(sub.StripeCustomerID)
	return overview, nil
}

func (s *BillingService) listInvoices(stripeCustomerID string) []InvoiceSummary {
	if stripeCustomerID == "" {
		return nil
	}
	listParams := &stripe.InvoiceListParams{Customer: stripe.String(stripeCustomerID)}
	listParams.Limit = stripe.Int64(12)

	var invoices []InvoiceSummary
	iter := invoice.List(listParams)
	for iter.Next() {
		inv := iter.Invoice()
		invoices = append(invoices, InvoiceSummary{
			Number:      inv.Number,
			AmountPaid:  inv.AmountPaid,
			Currency:    string(inv.Currency),
			Status:      string(inv.Status),
			CreatedAt:   time.Unix(inv.Created, 0),
			HostedURL:   inv.HostedInvoiceURL,
			DownloadURL: inv.InvoicePDF,
		})
	}
	if err := iter.Err(); err != nil {
		configslog.Log.Warn("Stripe fatura listesi alınamadı",
			zap.String("stripe_customer_id", stripeCustomerID), zap.Error(err))
	}
	return invoices
}

// HandleWebhook Stripe webhook olaylarını doğrular ve yerel abonelik ile
// kullanıcı planını senkronlar.
func (s *BillingService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, configs.GetStripeWebhookSecret())
	if err != nil {
		configslog.Log.Warn("Stripe webhook imzası geçersiz", zap.Error(err))
		return ErrBillingWebhookInvalid
	}

	ctx := context.Background()
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("%w: %v", ErrBillingWebhookMismatch, err)
		}
		return s.handleCheckoutCompleted(ctx, &sess)
	case "customer.subscription.updated", "customer.subscription.deleted":
		var stripeSubObj stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &stripeSubObj); err != nil {
			return fmt.Errorf("%w: %v", ErrBillingWebhookMismatch, err)
		}
		return s.handleSubscriptionChanged(ctx, &stripeSubObj)
	default:
		configslog.SLog.Debugf("İşlenmeyen Stripe olayı: %s", event.Type)
		return nil
	}
}

func (s *BillingService) handleCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	var userID uint
	if _, err := fmt.Sscanf(sess.ClientReferenceID, "%d", &userID); err != nil || userID == 0 {
		return fmt.Errorf("%w: client_reference_id çözümlenemedi", ErrBillingWebhookMismatch)
	}
	var planID uint
	fmt.Sscanf(sess.Metadata["plan_id"], "%d", &planID)

	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("%w: plan %d bulunamadı", ErrBillingWebhookMismatch, planID)
	}

	sub := &models.Subscription{
		UserID: userID,
		PlanID: plan.ID,
		Status: models.SubscriptionStatusActive,
	}
	if sess.Customer != nil {
		sub.StripeCustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		sub.StripeSubscriptionID = sess.Subscription.ID
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		configslog.Log.Error("Yerel abonelik kaydı oluşturulamadı",
			zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"plan_id": plan.ID}, userID); err != nil {
		configslog.Log.Error("Kullanıcı planı güncellenemedi", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Abonelik başladı: kullanıcı %d, plan %s", userID, plan.Name)
	return nil
}

func (s *BillingService) handleSubscriptionChanged(ctx context.Context, stripeSubObj *stripe.Subscription) error {
	sub, err := s.subRepo.FindByStripeSubscriptionID(ctx, stripeSubObj.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Checkout webhook'u henüz işlenmemiş olabilir, olay atlanır.
			configslog.Log.Warn("Bilinmeyen Stripe aboneliği için olay alındı",
				zap.String("stripe_subscription_id", stripeSubObj.ID))
			return nil
		}
		return err
	}

	sub.Status = string(stripeSubObj.Status)
	if stripeSubObj.CurrentPeriodEnd > 0 {
		periodEnd := time.Unix(stripeSubObj.CurrentPeriodEnd, 0)
		sub.CurrentPeriodEnd = &periodEnd
	}
	if stripeSubObj.CanceledAt > 0 {
		canceledAt := time.Unix(stripeSubObj.CanceledAt, 0)
		sub.CanceledAt = &canceledAt
	}
	if err := s.subRepo.Save(ctx, sub); err != nil {
		return err
	}

	// Abonelik kullanım hakkı vermiyorsa kullanıcı FREE plana düşürülür.
	if !sub.IsActive() {
		freePlan, planErr := s.planRepo.FindByName(ctx, models.PlanNameFree)
		if planErr != nil {
			configslog.Log.Error("FREE plan bulunamadı, düşürme atlandı", zap.Error(planErr))
			return planErr
		}
		if err := s.userRepo.Update(ctx, sub.UserID, map[string]interface{}{"plan_id": freePlan.ID}, sub.UserID); err != nil {
			return err
		}
		configslog.SLog.Infof("Abonelik sonlandı, kullanıcı %d FREE plana alındı", sub.UserID)
	}
	return nil
}

var _ IBillingService = (*BillingService)(nil)
