package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
)

//go:embed templates
var tplFS embed.FS

// Error 渲染失败（未知页面、模板执行出错）。正常运行中不应出现，对应 500。
type Error struct {
	Page string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("render %q: %v", e.Page, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Renderer 页面渲染器：纯函数，不做任何网络/存储访问，
// initialData 由调用方准备好再传入。相同输入产出字节一致的标记。
type Renderer struct {
	tpl       *template.Template
	urlPrefix string
}

func New(urlPrefix string) (*Renderer, error) {
	t, err := template.ParseFS(tplFS, "templates/*.tmpl", "templates/pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: t, urlPrefix: urlPrefix}, nil
}

// Render 产出页面组件的 HTML 片段（不含外层文档）
func (r *Renderer) Render(page string, initialData map[string]any) (string, error) {
	name := "page/" + page
	if r.tpl.Lookup(name) == nil {
		return "", &Error{Page: page, Err: fmt.Errorf("unknown page")}
	}
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, initialData); err != nil {
		return "", &Error{Page: page, Err: err}
	}
	return buf.String(), nil
}

type docParams struct {
	Title       string
	AppHTML     template.HTML
	InitialJSON template.JS
	CSSPath     string
	HydratePath string
	BundlePath  string
}

// Document 把片段包进完整 HTML 文档：
// 服务端标记放进 #root，初始数据序列化为 window.__INITIAL_DATA__，
// 并引用水合运行时与页面对应的脚本包。
func (r *Renderer) Document(page, title string, initialData map[string]any) (string, error) {
	appHTML, err := r.Render(page, initialData)
	if err != nil {
		return "", err
	}
	// json.Marshal 对 map 键排序且转义 <>&，嵌入 <script> 安全且可复现
	raw, err := json.Marshal(initialData)
	if err != nil {
		return "", &Error{Page: page, Err: err}
	}

	var buf bytes.Buffer
	err = r.tpl.ExecuteTemplate(&buf, "layout", docParams{
		Title:       title,
		AppHTML:     template.HTML(appHTML),
		InitialJSON: template.JS(raw),
		CSSPath:     r.urlPrefix + "/static/css/main.css",
		HydratePath: r.urlPrefix + "/static/js/hydrate.js",
		BundlePath:  r.urlPrefix + "/static/js/" + page + ".js",
	})
	if err != nil {
		return "", &Error{Page: page, Err: err}
	}
	return buf.String(), nil
}
