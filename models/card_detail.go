package models

// CTAMode kartvizitteki aksiyon alanının türünü belirler.
// Tek seferde yalnızca bir mod seçilebilir; moda ait olmayan alanlar boş olmalıdır.
type CTAMode string

const (
	CTAModeNone    CTAMode = "none"    // Aksiyon alanı yok
	CTAModeBooking CTAMode = "booking" // Harici randevu/booking linki
	CTAModeButton  CTAMode = "button"  // Serbest buton (etiket + URL)
	CTAModeAd      CTAMode = "ad"      // Reklam görseli + hedef URL
	CTAModeLead    CTAMode = "lead"    // Ziyaretçiden iletişim bilgisi toplayan form
)

// AllCTAModes form seçenekleri için kapalı mod kümesi.
var AllCTAModes = []CTAMode{CTAModeNone, CTAModeBooking, CTAModeButton, CTAModeAd, CTAModeLead}

// IsValid modun bilinen değerlerden biri olup olmadığını kontrol eder.
func (m CTAMode) IsValid() bool {
	switch m {
	case CTAModeNone, CTAModeBooking, CTAModeButton, CTAModeAd, CTAModeLead:
		return true
	}
	return false
}

// BioMaxLength hakkında metninin karakter sınırı.
const BioMaxLength = 1000

// CardDetail dijital kartvizitin içerik alanlarını taşır.
type CardDetail struct {
	BaseModel
	CardID uint `gorm:"uniqueIndex;not null"` // cards.id FK

	// Kişisel Bilgiler
	FirstName      string `gorm:"type:varchar(100);not null" form:"first_name"`
	LastName       string `gorm:"type:varchar(100);not null" form:"last_name"`
	Title          string `gorm:"type:varchar(100)" form:"title"` // Ünvan
	Company        string `gorm:"type:varchar(150)" form:"company"`
	Accreditations string `gorm:"type:varchar(150)" form:"accreditations"` // Örn: PhD, PMP
	Bio            string `gorm:"type:text" form:"bio"`

	// İletişim Bilgileri
	Email       string `gorm:"type:varchar(100);index" form:"email"`
	PhoneNumber string `gorm:"type:varchar(30)" form:"phone_number"`
	Website     string `gorm:"type:varchar(255)" form:"website"`
	Address     string `gorm:"type:text" form:"address"`

	// Sosyal Medya Linkleri. Dolu alan sayısı plan limitine tabidir
	// (bkz. Plan.MaxSocialLinks, servis katmanında kontrol edilir).
	LinkedInURL  string `gorm:"type:varchar(255)" form:"linkedin_url"`
	TwitterURL   string `gorm:"type:varchar(255)" form:"twitter_url"`
	GitHubURL    string `gorm:"type:varchar(255)" form:"github_url"`
	InstagramURL string `gorm:"type:varchar(255)" form:"instagram_url"`
	FacebookURL  string `gorm:"type:varchar(255)" form:"facebook_url"`
	YouTubeURL   string `gorm:"type:varchar(255)" form:"youtube_url"`

	// Görsel Öğeler
	BrandColor      string `gorm:"type:varchar(7)" form:"brand_color"`   // Örn: #1A73E8
	LayoutVariant   string `gorm:"type:varchar(30)" form:"layout_variant"` // Örn: classic, split
	TemplateType    string `gorm:"type:varchar(30)" form:"template_type"`
	ProfileImageURL string `gorm:"type:varchar(500)" form:"profile_image_url"`
	CoverImageURL   string `gorm:"type:varchar(500)" form:"cover_image_url"`
	LogoURL         string `gorm:"type:varchar(500)" form:"logo_url"`

	// Aksiyon alanı (CTA): mod seçimine göre alt alanlar dolar.
	CTAMode     CTAMode `gorm:"type:varchar(10);default:'none'" form:"cta_mode"`
	BookingURL  string  `gorm:"type:varchar(500)" form:"booking_url"` // mode=booking
	ButtonLabel string  `gorm:"type:varchar(60)" form:"button_label"`  // mode=button
	ButtonURL   string  `gorm:"type:varchar(500)" form:"button_url"` // mode=button
	AdImageURL  string  `gorm:"type:varchar(500)" form:"ad_image_url"` // mode=ad
	AdTargetURL string  `gorm:"type:varchar(500)" form:"ad_target_url"` // mode=ad
	LeadPrompt  string  `gorm:"type:varchar(200)" form:"lead_prompt"` // mode=lead

	// Ek Ayarlar
	AllowSaveContact bool `gorm:"default:true" form:"allow_save_contact"` // vCard indirme izni
}

// SocialURLs dolu/boş fark etmeksizin tüm sosyal link alanlarını döndürür.
func (d CardDetail) SocialURLs() []string {
	return []string{
		d.LinkedInURL, d.TwitterURL, d.GitHubURL,
		d.InstagramURL, d.FacebookURL, d.YouTubeURL,
	}
}

// PopulatedSocialLinkCount dolu sosyal link sayısını döndürür.
func (d CardDetail) PopulatedSocialLinkCount() int {
	count := 0
	for _, u := range d.SocialURLs() {
		if u != "" {
			count++
		}
	}
	return count
}
