package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// Link is one navigation entry.
type Link struct {
	Href  string
	Label string
}

// NavLinks are the main navigation entries, in display order.
func NavLinks() []Link {
	return []Link{
		{"/", "דף הבית"},
		{"/categories", "עיון בעבודות"},
		{"/guides", "מדריכים"},
		{"/about", "אודות"},
		{"/sell", "הצטרפות ככותב"},
		{"/contact", "צור קשר"},
	}
}

// HelpLinks are the footer's support entries.
func HelpLinks() []Link {
	return []Link{
		{"/faq", "שאלות נפוצות"},
		{"/search", "חיפוש מתקדם"},
		{"/auth", "התחברות / הרשמה"},
		{"/profile", "אזור אישי"},
	}
}

// LegalLinks sit at the very bottom of the footer.
func LegalLinks() []Link {
	return []Link{
		{"/terms", "תנאי שימוש"},
		{"/privacy", "מדיניות פרטיות"},
		{"/faq", "שאלות נפוצות"},
	}
}

// Contact details shown in the footer.
const (
	ContactPhone = "052-689-8662"
	ContactEmail = "ortech2021@gmail.com"
)

var funcs = template.FuncMap{
	"navLinks":   NavLinks,
	"helpLinks":  HelpLinks,
	"legalLinks": LegalLinks,
	"size":       sizeToDisplay,
	"itoa":       itoa,
	"millis":     millis,
	"contact":    func() map[string]string { return map[string]string{"Phone": ContactPhone, "Email": ContactEmail} },
}

// baseTmpl is the site shell: RTL document, navbar, footer. Each page clones
// it and defines "content".
var baseTmpl = template.Must(template.New("base").Funcs(funcs).Parse(`
{{define "layout"}}<!DOCTYPE html>
<html lang="he" dir="rtl">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>אקדליסט - מאגר עבודות אקדמיות</title>
<meta name="description" content="מאגר עבודות אקדמיות לסטודנטים וחוקרים">
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://cdn.tailwindcss.com"></script>
<style>
  .htmx-indicator { display: none; }
  .htmx-request .htmx-indicator, .htmx-request.htmx-indicator { display: inline-block; }
  .htmx-request .idle-label { display: none; }
  /* An input is marked invalid only while its error element has text, so
     swapping the error element alone keeps the two in step. */
  .field:has(.field-error:not(:empty)) :is(input, textarea) { border-color: #ef4444; --tw-ring-color: #ef4444; }
  .field-check:has(.field-error:not(:empty)) label { color: #ef4444; }
  .field-check:has(.field-error:not(:empty)) input { accent-color: #ef4444; }
</style>
</head>
<body class="min-h-screen bg-white">
{{template "navbar" .}}
<main>
{{template "content" .}}
</main>
{{template "footer" .}}
</body>
</html>{{end}}

{{define "navbar"}}
<header class="sticky top-0 z-50 w-full border-b bg-white/95 backdrop-blur">
  <div class="container mx-auto flex h-16 items-center justify-between px-4">
    <a href="/" class="flex items-center gap-2 font-bold text-xl text-green-600">אקדליסט</a>
    <nav class="hidden md:flex items-center gap-6" aria-label="ניווט ראשי">
      {{- $path := .Path}}
      {{- range navLinks}}
      <a href="{{.Href}}" class="text-sm font-medium transition-colors hover:text-green-600{{if eq .Href $path}} text-green-600{{end}}">{{.Label}}</a>
      {{- end}}
    </nav>
    <div class="hidden md:flex items-center gap-2">
      <a href="/auth" class="rounded-full border border-green-600 px-4 py-2 text-sm text-green-600">התחברות / הרשמה</a>
      <a href="/profile" class="text-sm text-gray-600 hover:text-green-600">הפרופיל שלי</a>
      <a href="/faq" class="text-sm text-gray-600 hover:text-green-600">שאלות נפוצות</a>
    </div>
  </div>
</header>
{{end}}

{{define "footer"}}
<footer class="bg-gray-50 border-t mt-16">
  <div class="container mx-auto px-4 py-10 grid grid-cols-1 md:grid-cols-4 gap-8">
    <div>
      <h3 class="text-lg md:text-xl font-bold mb-2">אקדליסט</h3>
      <p class="text-gray-600 text-sm">מאגר עבודות אקדמיות לסטודנטים וחוקרים</p>
    </div>
    <div>
      <h3 class="text-base md:text-lg font-bold mb-4">קישורים מהירים</h3>
      <ul class="space-y-2">
        {{- range navLinks}}
        <li><a href="{{.Href}}" class="text-gray-600 hover:text-green-600"><span class="ml-1">›</span> {{.Label}}</a></li>
        {{- end}}
      </ul>
    </div>
    <div>
      <h3 class="text-base md:text-lg font-bold mb-4">עזרה ותמיכה</h3>
      <ul class="space-y-2">
        {{- range helpLinks}}
        <li><a href="{{.Href}}" class="text-gray-600 hover:text-green-600"><span class="ml-1">›</span> {{.Label}}</a></li>
        {{- end}}
      </ul>
    </div>
    <div>
      <h3 class="text-base md:text-lg font-bold mb-4">צור קשר</h3>
      {{- with contact}}
      <p class="text-gray-600 text-sm md:text-base">{{.Phone}}</p>
      <p class="text-gray-600 text-sm md:text-base">{{.Email}}</p>
      {{- end}}
      <a href="/contact" class="inline-block mt-3 rounded-full bg-green-600 px-4 py-2 text-sm text-white">צור קשר</a>
    </div>
  </div>
  <div class="border-t py-4 text-center flex flex-wrap justify-center gap-4">
    {{- range legalLinks}}
    <a href="{{.Href}}" class="text-gray-500 text-xs md:text-sm hover:text-green-600 transition-colors">{{.Label}}</a>
    {{- end}}
  </div>
</footer>
{{end}}
`))

// component adapts a named template of t to templ's component interface.
func component(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}
