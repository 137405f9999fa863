package metadomain

import "strings"

// Prefixos de action_type que representam sinais de atribuição duplicados
// ou sobrepostos do mesmo evento. O Meta publica o mesmo evento sob vários
// agregadores (omni_, onsite_*, offsite_conversion.fb_pixel_*), o que
// infla contagens quando somado ingenuamente.
var redundantActionPrefixes = []string{
	"omni_",
	"onsite_web_app_",
	"onsite_web_",
	"onsite_app_",
	"web_app_in_store_",
	"offsite_conversion.fb_pixel_",
}

// Campos de linha que carregam listas de ações sujeitas a redundância
var actionListFields = []string{
	"actions",
	"action_values",
	"cost_per_action_type",
	"conversions",
}

// StripRedundantActions remove das listas de ações de cada linha as
// entradas cujo action_type começa com um dos prefixos redundantes.
// A transformação é estrutural: campos não relacionados ficam intactos,
// e payloads sem o array "data" ou com linhas fora do formato esperado
// passam adiante sem alteração.
func StripRedundantActions(payload map[string]any) map[string]any {
	if payload == nil {
		return payload
	}

	rows, ok := payload["data"].([]any)
	if !ok {
		return payload
	}

	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		for _, field := range actionListFields {
			list, ok := row[field].([]any)
			if !ok {
				continue
			}

			filtered := make([]any, 0, len(list))

			for _, entry := range list {
				action, ok := entry.(map[string]any)
				if !ok {
					filtered = append(filtered, entry)
					continue
				}

				actionType, _ := action["action_type"].(string)
				if isRedundantActionType(actionType) {
					continue
				}

				filtered = append(filtered, entry)
			}

			row[field] = filtered
		}
	}

	return payload
}

func isRedundantActionType(actionType string) bool {
	for _, prefix := range redundantActionPrefixes {
		if strings.HasPrefix(actionType, prefix) {
			return true
		}
	}

	return false
}
