package model

type Industry string

const (
	IndustryFintech            Industry = "FINTECH"
	IndustryAI                 Industry = "AI"
	IndustryEcommerce          Industry = "ECOMMERCE"
	IndustryHealthcare         Industry = "HEALTHCARE"
	IndustryEdtech             Industry = "EDTECH"
	IndustryHealthtech         Industry = "HEALTHTECH"
	IndustryCybersecurity      Industry = "CYBERSECURITY"
	IndustryLogistics          Industry = "LOGISTICS"
	IndustryMusicEntertainment Industry = "MUSIC_ENTERTAINMENT"
	IndustryRealEstate         Industry = "REAL_ESTATE"
	IndustrySaaS               Industry = "SAAS"
	IndustryConsumer           Industry = "CONSUMER"
	IndustryBlockchain         Industry = "BLOCKCHAIN"
	IndustryDigitalMedia       Industry = "DIGITAL_MEDIA"
)

// AllIndustries все отрасли в порядке объявления
var AllIndustries = []Industry{
	IndustryFintech,
	IndustryAI,
	IndustryEcommerce,
	IndustryHealthcare,
	IndustryEdtech,
	IndustryHealthtech,
	IndustryCybersecurity,
	IndustryLogistics,
	IndustryMusicEntertainment,
	IndustryRealEstate,
	IndustrySaaS,
	IndustryConsumer,
	IndustryBlockchain,
	IndustryDigitalMedia,
}

// RelatedIndustries смежные отрасли для каждой отрасли.
// Связь не обязательно симметрична, сама отрасль в списке не встречается.
var RelatedIndustries = map[Industry][]Industry{
	IndustryFintech: {
		IndustryAI, IndustryEcommerce, IndustryHealthcare,
		IndustryLogistics, IndustrySaaS, IndustryBlockchain,
	},
	IndustryAI: {
		IndustryFintech, IndustryEcommerce, IndustryHealthcare, IndustryEdtech,
		IndustryHealthtech, IndustryCybersecurity, IndustryLogistics,
		IndustryMusicEntertainment, IndustryRealEstate, IndustrySaaS,
		IndustryConsumer, IndustryBlockchain, IndustryDigitalMedia,
	},
	IndustryEcommerce: {
		IndustryFintech, IndustryAI, IndustryHealthcare, IndustryLogistics,
		IndustryRealEstate, IndustrySaaS, IndustryConsumer, IndustryDigitalMedia,
	},
	IndustryHealthcare: {
		IndustryFintech, IndustryAI, IndustryEcommerce, IndustryEdtech,
		IndustryHealthtech, IndustryCybersecurity, IndustryLogistics,
		IndustryRealEstate, IndustryConsumer, IndustryBlockchain, IndustryDigitalMedia,
	},
	IndustryEdtech: {IndustryAI, IndustryHealthcare, IndustryDigitalMedia},
	IndustryHealthtech: {
		IndustryAI, IndustryHealthcare, IndustryLogistics,
		IndustryBlockchain, IndustryDigitalMedia,
	},
	IndustryCybersecurity: {
		IndustryAI, IndustryHealthcare, IndustryLogistics, IndustryBlockchain,
	},
	IndustryLogistics: {
		IndustryFintech, IndustryAI, IndustryHealthcare, IndustryCybersecurity,
		IndustryEcommerce, IndustryRealEstate, IndustryBlockchain,
	},
	IndustryMusicEntertainment: {IndustryAI, IndustryDigitalMedia},
	IndustryRealEstate: {
		IndustryFintech, IndustryEcommerce, IndustryHealthcare,
		IndustryLogistics, IndustrySaaS, IndustryDigitalMedia,
	},
	IndustrySaaS: {
		IndustryFintech, IndustryAI, IndustryEcommerce,
		IndustryLogistics, IndustryRealEstate, IndustryDigitalMedia,
	},
	IndustryConsumer: {
		IndustryAI, IndustryEcommerce, IndustryRealEstate, IndustryDigitalMedia,
	},
	IndustryBlockchain: {
		IndustryFintech, IndustryAI, IndustryHealthtech,
		IndustryCybersecurity, IndustryLogistics,
	},
	IndustryDigitalMedia: {
		IndustryAI, IndustryEcommerce, IndustryHealthtech, IndustryMusicEntertainment,
		IndustryRealEstate, IndustrySaaS, IndustryConsumer, IndustryBlockchain,
	},
}

// Valid проверяет, что отрасль известна
func (i Industry) Valid() bool {
	_, ok := RelatedIndustries[i]
	return ok
}

// Related возвращает смежные отрасли, для неизвестной отрасли nil
func (i Industry) Related() []Industry {
	return RelatedIndustries[i]
}
