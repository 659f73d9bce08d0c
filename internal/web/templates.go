package web

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/d60-Lab/yatube/pkg/storage"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// dateLayout 页面上统一的时间格式，总是按 UTC 输出
const dateLayout = "02.01.2006 15:04"

// Templates 解析内嵌模板；mediaURL 通过 media 生成图片地址
func Templates(media storage.Storage) (*template.Template, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string { return t.UTC().Format(dateLayout) },
		"linebreaks": func(s string) template.HTML {
			escaped := template.HTMLEscapeString(s)
			return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
		},
		"mediaURL": func(key string) string {
			if media == nil {
				return key
			}
			return media.URL(key)
		},
	}
	return template.New("yatube").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}
