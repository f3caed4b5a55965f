package lesson

import "strings"

// Language maps a short code to display name and the vendor-specific codes
// used by speech recognition and synthesis.
type Language struct {
	Name    string `json:"name"`
	STTCode string `json:"stt_code"`
	TTSCode string `json:"tts_code"`
}

// DefaultLanguage is used whenever a request carries no or an unsupported
// language code.
const DefaultLanguage = "en"

var supportedLanguages = map[string]Language{
	"en": {Name: "English", STTCode: "en-US", TTSCode: "en"},
	"es": {Name: "Spanish", STTCode: "es-ES", TTSCode: "es"},
	"fr": {Name: "French", STTCode: "fr-FR", TTSCode: "fr"},
	"de": {Name: "German", STTCode: "de-DE", TTSCode: "de"},
	"it": {Name: "Italian", STTCode: "it-IT", TTSCode: "it"},
	"pt": {Name: "Portuguese", STTCode: "pt-PT", TTSCode: "pt"},
	"ru": {Name: "Russian", STTCode: "ru-RU", TTSCode: "ru"},
	"zh": {Name: "Chinese (Simplified)", STTCode: "zh-CN", TTSCode: "zh-CN"},
	"ja": {Name: "Japanese", STTCode: "ja-JP", TTSCode: "ja"},
	"ko": {Name: "Korean", STTCode: "ko-KR", TTSCode: "ko"},
	"ar": {Name: "Arabic", STTCode: "ar-SA", TTSCode: "ar"},
	"hi": {Name: "Hindi", STTCode: "hi-IN", TTSCode: "hi"},
	"ta": {Name: "Tamil", STTCode: "ta-IN", TTSCode: "ta"},
	"te": {Name: "Telugu", STTCode: "te-IN", TTSCode: "te"},
	"bn": {Name: "Bengali", STTCode: "bn-IN", TTSCode: "bn"},
	"vi": {Name: "Vietnamese", STTCode: "vi-VN", TTSCode: "vi"},
	"th": {Name: "Thai", STTCode: "th-TH", TTSCode: "th"},
	"id": {Name: "Indonesian", STTCode: "id-ID", TTSCode: "id"},
	"nl": {Name: "Dutch", STTCode: "nl-NL", TTSCode: "nl"},
	"pl": {Name: "Polish", STTCode: "pl-PL", TTSCode: "pl"},
	"tr": {Name: "Turkish", STTCode: "tr-TR", TTSCode: "tr"},
	"uk": {Name: "Ukrainian", STTCode: "uk-UA", TTSCode: "uk"},
}

// systemPrompts carries the tutor persona line per language. Unlisted
// languages fall back to English.
var systemPrompts = map[string]string{
	"en": "You are an expert, friendly, and focused AI Math Tutor. Respond in English with clear explanations.",
	"es": "Eres un tutor de matemáticas experto, amigable y enfocado. Responde en español con explicaciones claras.",
	"fr": "Vous êtes un tuteur de mathématiques expert, amical et concentré. Répondez en français avec des explications claires.",
	"de": "Sie sind ein erfahrener, freundlicher und fokussierter Mathe-Tutor. Antworten Sie auf Deutsch mit klaren Erklärungen.",
	"hi": "आप एक विशेषज्ञ, मित्रवत और केंद्रित गणित शिक्षक हैं। स्पष्ट व्याख्या के साथ हिंदी में उत्तर दें।",
	"zh": "你是一位专业、友好、专注的数学导师。用中文回答，并提供清晰的解释。",
	"ar": "أنت مدرس رياضيات خبير وودود ومركز. أجب باللغة العربية مع تفسيرات واضحة.",
	"ja": "あなたは専門的で親しみやすく、集中した数学の家庭教師です。明確な説明で日本語で答えてください。",
	"pt": "Você é um tutor de matemática especialista, amigável e focado. Responda em português com explicações claras.",
	"ru": "Вы опытный, дружелюбный и сосредоточенный репетитор по математике. Отвечайте на русском языке с четкими объяснениями.",
	"it": "Sei un tutor di matematica esperto, amichevole e concentrato. Rispondi in italiano con spiegazioni chiare.",
	"ko": "당신은 전문적이고 친근하며 집중된 수학 튜터입니다. 명확한 설명과 함께 한국어로 답변하세요.",
	"ta": "நீங்கள் ஒரு நிபுணர், நட்பு மற்றும் கவனம் செலுத்தும் கணித ஆசிரியர். தெளிவான விளக்கங்களுடன் தமிழில் பதிலளியுங்கள்.",
	"te": "మీరు నిపుణుడు, స్నేహపూర్వక మరియు దృష్టి పెట్టే గణిత ట్యూటర్. తెలుగులో స్పష్టమైన వివరణలతో సమాధానం ఇవ్వండి.",
	"vi": "Bạn là một gia sư toán chuyên nghiệp, thân thiện và tập trung. Trả lời bằng tiếng Việt với lời giải thích rõ ràng.",
}

// NormalizeLanguage returns the code itself when supported, else the
// default.
func NormalizeLanguage(code string) string {
	if _, ok := supportedLanguages[code]; ok {
		return code
	}
	return DefaultLanguage
}

// IsSupportedLanguage reports whether code is in the language table.
func IsSupportedLanguage(code string) bool {
	_, ok := supportedLanguages[code]
	return ok
}

// LanguageInfo returns the language entry, falling back to the default.
func LanguageInfo(code string) Language {
	if l, ok := supportedLanguages[code]; ok {
		return l
	}
	return supportedLanguages[DefaultLanguage]
}

// SystemPrompt returns the tutor persona line for the language, falling back
// to English.
func SystemPrompt(code string) string {
	if p, ok := systemPrompts[code]; ok {
		return p
	}
	return systemPrompts[DefaultLanguage]
}

// detection marker words per language; a match count at or above the
// threshold claims the text.
var detectionPatterns = []struct {
	code      string
	threshold int
	markers   []string
}{
	{"hi", 2, []string{"है", "हैं", "का", "की", "के", "को", "से", "में", "क्या", "कैसे", "कहाँ", "क्यों", "वृत्त", "क्षेत्रफल", "त्रिज्या"}},
	{"te", 2, []string{"ఏమి", "ఎలా", "ఎక్కడ", "ఎందుకు", "మనం", "మీరు", "నేను", "ఉంది", "గణిత", "సమస్య", "వృత్తం"}},
	{"es", 3, []string{" el ", " la ", " de ", " que ", " en ", " un ", " una ", " con ", " por ", " para "}},
	{"fr", 3, []string{" le ", " la ", " du ", " des ", " et ", " que ", " dans ", " sur ", " avec "}},
}

// DetectLanguage guesses the language of untagged text from marker words.
// Defaults to English.
func DetectLanguage(text string) string {
	if text == "" {
		return DefaultLanguage
	}
	padded := " " + strings.ToLower(text) + " "
	for _, p := range detectionPatterns {
		count := 0
		for _, m := range p.markers {
			if strings.Contains(padded, m) {
				count++
			}
		}
		if count >= p.threshold {
			return p.code
		}
	}
	return DefaultLanguage
}
