package templates

import (
	"html/template"

	"github.com/a-h/templ"
)

// Shell is the data every page carries for the navigation chrome.
type Shell struct {
	Path string
}

var homeTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<section class="py-20 px-4 bg-gradient-to-b from-green-50 to-white text-center">
  <h1 class="text-4xl md:text-5xl font-bold mb-6">מאגר עבודות אקדמיות</h1>
  <p class="text-xl text-gray-600 max-w-3xl mx-auto mb-10">
    סמינריונים, עבודות גמר ומצגות מסטודנטים וחוקרים, במקום אחד
  </p>
  <div class="flex flex-wrap justify-center gap-4">
    <a href="/categories" class="rounded-full bg-green-600 hover:bg-green-500 px-8 py-3 text-white shadow-lg">עיון בעבודות</a>
    <a href="/sell" class="rounded-full border-2 border-green-600 px-8 py-3 text-green-600">הצטרפות ככותב</a>
  </div>
</section>
{{end}}
`))

var notFoundTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<section class="py-24 px-4 text-center">
  <h1 class="text-3xl font-bold mb-4">הדף לא נמצא</h1>
  <a href="/" class="text-green-600 underline">חזרה לדף הבית</a>
</section>
{{end}}
`))

// Home renders the landing page.
func Home() templ.Component {
	return component(homeTmpl, "layout", Shell{Path: "/"})
}

// NotFound renders the 404 page inside the site shell.
func NotFound(path string) templ.Component {
	return component(notFoundTmpl, "layout", Shell{Path: path})
}
