// Package i18n holds the guide's message table and the closed language set.
package i18n

import "strings"

// Message keys known to the table.
const (
	KeyWelcomeMessage        = "welcome_message"
	KeyLanguageSet           = "language_set"
	KeyLandmarkPrompt        = "landmark_prompt"
	KeyLandmarkInfo          = "landmark_info"
	KeyRecommendationPrompt  = "recommendation_prompt"
	KeyRecommendations       = "recommendations"
	KeyRecommendationKeyword = "recommendation_keyword"
	KeyNoRecommendations     = "no_recommendations"
	KeyAudioStory            = "audio_story"
	KeyMemoryWall            = "memory_wall"
	KeyAnonymous             = "anonymous"
	KeyNoFileSelected        = "no_file_selected"
	KeyMapLinkMissing        = "map_link_missing"
	KeyAIError               = "ai_error"
	KeyDataError             = "data_error"
	KeyDayMode               = "day_mode"
	KeyNightMode             = "night_mode"
)

var messages = map[string]map[Language]string{
	KeyWelcomeMessage: {
		Arabic:  "مرحباً بكم في الدليل السياحي الذكي لمنطقة عسير!",
		English: "Welcome to the Asir region smart tour guide!",
		French:  "Bienvenue dans le guide touristique intelligent de la région d'Asir!",
		Spanish: "¡Bienvenido al guía turístico inteligente de la región de Asir!",
	},
	KeyLanguageSet: {
		Arabic:  "تم تعيين اللغة إلى {language}",
		English: "Language set to {language}",
		French:  "Langue définie sur {language}",
		Spanish: "Idioma establecido en {language}",
	},
	KeyLandmarkPrompt: {
		Arabic:  "من فضلك أدخل رقم المعلم أو اسمه...",
		English: "Please enter the landmark number or name...",
		French:  "Veuillez entrer le numéro ou le nom du site...",
		Spanish: "Por favor ingrese el número o el nombre del sitio...",
	},
	KeyLandmarkInfo: {
		Arabic:  "معلومات عن المعلم",
		English: "Information about the landmark",
		French:  "Informations sur le site",
		Spanish: "Información sobre el sitio",
	},
	KeyRecommendationPrompt: {
		Arabic:  "هل ترغب في الحصول على توصيات لزيارة معالم أخرى قريبة؟",
		English: "Would you like recommendations for other nearby landmarks?",
		French:  "Souhaitez-vous des recommandations pour d'autres sites proches?",
		Spanish: "¿Desea recomendaciones para otros lugares cercanos?",
	},
	KeyRecommendations: {
		Arabic:  "نقترح لك زيارة هذه المعالم:",
		English: "We recommend these sites:",
		French:  "Nous recommandons ces sites:",
		Spanish: "Recomendamos estos sitios:",
	},
	KeyRecommendationKeyword: {
		Arabic:  "توصيات",
		English: "recommendations",
		French:  "recommandations",
		Spanish: "recomendaciones",
	},
	KeyNoRecommendations: {
		Arabic:  "حسنًا، إذا أردت توصيات لاحقًا فقط أخبرني.",
		English: "Alright, if you want recommendations later, just let me know.",
		French:  "Très bien, si vous voulez des recommandations plus tard, dites-le-moi.",
		Spanish: "Está bien, si deseas recomendaciones más adelante, solo dímelo.",
	},
	KeyAudioStory: {
		Arabic:  "🎧 استمع إلى القصة الصوتية للمعلم: {url}",
		English: "🎧 Listen to the landmark's audio story: {url}",
		French:  "🎧 Écoutez l'histoire audio du site: {url}",
		Spanish: "🎧 Escucha la historia en audio del sitio: {url}",
	},
	KeyMemoryWall: {
		Arabic:  "📸 جدار الذكريات متاح لهذا المعلم، شاركنا صورك!",
		English: "📸 The memory wall is open for this landmark, share your photos!",
		French:  "📸 Le mur des souvenirs est ouvert pour ce site, partagez vos photos!",
		Spanish: "📸 El muro de recuerdos está abierto para este sitio, ¡comparte tus fotos!",
	},
	KeyAnonymous: {
		Arabic:  "زائر",
		English: "Guest",
		French:  "Invité",
		Spanish: "Invitado",
	},
	KeyNoFileSelected: {
		Arabic:  "الرجاء اختيار صورة أولاً.",
		English: "Please choose a photo first.",
		French:  "Veuillez d'abord choisir une photo.",
		Spanish: "Por favor, elige una foto primero.",
	},
	KeyMapLinkMissing: {
		Arabic:  "🔗 الرابط غير متوفر",
		English: "🔗 Link not available",
		French:  "🔗 Lien non disponible",
		Spanish: "🔗 Enlace no disponible",
	},
	KeyAIError: {
		Arabic:  "عذراً، حدث خطأ في توليد الرد.",
		English: "Sorry, there was an error generating the response.",
		French:  "Désolé, une erreur s'est produite lors de la génération.",
		Spanish: "Lo sentimos, ocurrió un error al generar la respuesta.",
	},
	KeyDataError: {
		Arabic:  "خطأ في تحميل البيانات.",
		English: "Error loading data.",
		French:  "Erreur de chargement des données.",
		Spanish: "Error al cargar los datos.",
	},
	KeyDayMode: {
		Arabic:  "الوضع النهاري",
		English: "Day Mode",
		French:  "Mode Jour",
		Spanish: "Modo Día",
	},
	KeyNightMode: {
		Arabic:  "الوضع الليلي",
		English: "Night Mode",
		French:  "Mode Nuit",
		Spanish: "Modo Noche",
	},
}

// Affirmative and negative replies to the recommendation prompt, across all
// supported languages. Matching is against the full normalized message.
var (
	yesWords = []string{"نعم", "yes", "oui", "sí"}
	noWords  = []string{"لا", "no", "non"}
)

// Translate resolves key for lang, substituting {name} placeholders from
// params. Falls back to the default language when the key has no template
// for lang, and to the literal key when the key is unknown.
func Translate(key string, lang Language, params map[string]string) string {
	templates, ok := messages[key]
	if !ok {
		return key
	}

	template, ok := templates[lang]
	if !ok {
		template, ok = templates[DefaultLanguage]
	}
	if !ok {
		return key
	}

	for name, value := range params {
		template = strings.ReplaceAll(template, "{"+name+"}", value)
	}
	return template
}

// T is Translate without parameters.
func T(key string, lang Language) string {
	return Translate(key, lang, nil)
}

// IsYes reports whether a normalized (lowercased, trimmed) message is an
// affirmative reply in any supported language.
func IsYes(normalized string) bool {
	return contains(yesWords, normalized)
}

// IsNo reports whether a normalized message is a negative reply.
func IsNo(normalized string) bool {
	return contains(noWords, normalized)
}

func contains(words []string, s string) bool {
	for _, w := range words {
		if w == s {
			return true
		}
	}
	return false
}
