package shopify

import "strings"

// NextPageURL extrae la URL con rel="next" de una cabecera Link de paginación por cursor:
//
//	<https://tienda/admin/api/2024-07/products.json?limit=250&page_info=abc>; rel="next"
//
// Devuelve "" si no hay página siguiente.
func NextPageURL(linkHeader string) string {
	if !strings.Contains(linkHeader, `rel="next"`) {
		return ""
	}
	for _, link := range strings.Split(linkHeader, ",") {
		if !strings.Contains(link, `rel="next"`) {
			continue
		}
		target, _, _ := strings.Cut(link, ";")
		return strings.Trim(target, "<> ")
	}
	return ""
}
