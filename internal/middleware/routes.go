package middleware

import "strings"

// Access уровень доступа к маршруту
type Access int

const (
	// Authenticated требует валидный токен
	Authenticated Access = iota
	// Public доступен без токена
	Public
)

// RouteRule связывает шаблон пути с уровнем доступа.
// Шаблон либо точный путь, либо префикс, оканчивающийся на "/*".
type RouteRule struct {
	Pattern string
	Access  Access
}

// DefaultRoutes таблица доступа API: открыты только health, metrics и вход
var DefaultRoutes = []RouteRule{
	{Pattern: "/health", Access: Public},
	{Pattern: "/metrics", Access: Public},
	{Pattern: "/auth/login", Access: Public},
	{Pattern: "/auth/register", Access: Public},
	{Pattern: "/auth/*", Access: Authenticated},
	{Pattern: "/users/*", Access: Authenticated},
	{Pattern: "/teams/*", Access: Authenticated},
	{Pattern: "/projects/*", Access: Authenticated},
}

// AccessFor возвращает уровень доступа первого подходящего правила.
// Для путей без правила нужна аутентификация.
func AccessFor(rules []RouteRule, path string) Access {
	for _, rule := range rules {
		if rule.matches(path) {
			return rule.Access
		}
	}
	return Authenticated
}

func (r RouteRule) matches(path string) bool {
	prefix, ok := strings.CutSuffix(r.Pattern, "/*")
	if !ok {
		return path == r.Pattern
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
