// Package i18n provides the two-language (English/Spanish) UI strings and
// per-request language resolution for the customer-facing pages.
package i18n

import (
	"context"
	"strings"
)

// DefaultLang is used when nothing else resolves a language.
const DefaultLang = "en"

type ctxKey struct{}

// WithLang stores the resolved language on the request context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, normalize(lang))
}

// Lang returns the language stored on the context, or the default.
func Lang(ctx context.Context) string {
	if lang, ok := ctx.Value(ctxKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}

// DetectLanguage maps an Accept-Language header to a supported language.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(tag, "-;"); i >= 0 {
			tag = tag[:i]
		}
		if _, ok := translations[tag]; ok {
			return tag
		}
	}
	return DefaultLang
}

// normalize clamps arbitrary user input ("?lang=...") to a supported tag.
func normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := translations[lang]; ok {
		return lang
	}
	return DefaultLang
}

// T translates a message code. Unknown languages fall back to English;
// unknown codes fall back to the code itself so missing strings are visible
// instead of blank.
func T(lang, code string) string {
	table, ok := translations[normalize(lang)]
	if !ok {
		table = translations[DefaultLang]
	}
	if msg, ok := table[code]; ok {
		return msg
	}
	if msg, ok := translations[DefaultLang][code]; ok {
		return msg
	}
	return code
}

var translations = map[string]map[string]string{
	"en": {
		"title":             "Auto Parts Request",
		"request_part":      "Request a Part",
		"customer_name":     "Your Name",
		"customer_phone":    "Phone Number",
		"vehicle_year":      "Vehicle Year",
		"vehicle_make":      "Vehicle Make",
		"vehicle_model":     "Vehicle Model",
		"vehicle_color":     "Vehicle Color",
		"color_any":         "Color doesn't matter",
		"part_needed":       "Part Needed",
		"additional_notes":  "Additional Notes",
		"photos":            "Photos of the Part",
		"submit":            "Submit Request",
		"thank_you":         "Thank you! Your request was submitted.",
		"we_will_contact":   "We will contact you with a quote shortly.",
		"required":          "Required",
		"request_not_found": "Request not found",
	},
	"es": {
		"title":             "Solicitud de Autopartes",
		"request_part":      "Solicitar una Pieza",
		"customer_name":     "Su Nombre",
		"customer_phone":    "Número de Teléfono",
		"vehicle_year":      "Año del Vehículo",
		"vehicle_make":      "Marca del Vehículo",
		"vehicle_model":     "Modelo del Vehículo",
		"vehicle_color":     "Color del Vehículo",
		"color_any":         "El color no importa",
		"part_needed":       "Pieza Necesaria",
		"additional_notes":  "Notas Adicionales",
		"photos":            "Fotos de la Pieza",
		"submit":            "Enviar Solicitud",
		"thank_you":         "¡Gracias! Su solicitud fue enviada.",
		"we_will_contact":   "Nos pondremos en contacto con una cotización pronto.",
		"required":          "Requerido",
		"request_not_found": "Solicitud no encontrada",
	},
}
