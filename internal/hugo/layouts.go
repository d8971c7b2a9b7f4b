package hugo

import "path/filepath"

const renderImageHook = "layouts/_default/_markup/render-image.html"

// passthroughImageTemplate references the source file as-is.
const passthroughImageTemplate = `{{- $src := .Destination -}}
<img src="{{ $src | safeURL }}" alt="{{ .Text }}"{{ with .Title }} title="{{ . }}"{{ end }} loading="lazy">
`

// resizeImageTemplate runs page-bundle images through Hugo's image pipeline.
const resizeImageTemplate = `{{- $img := .Page.Resources.Get .Destination -}}
{{- if and $img (in (slice "jpeg" "png" "webp") $img.MediaType.SubType) -}}
{{- $small := $img.Resize "800x webp" -}}
<img src="{{ $small.RelPermalink }}" width="{{ $small.Width }}" height="{{ $small.Height }}" alt="{{ .Text }}"{{ with .Title }} title="{{ . }}"{{ end }} loading="lazy">
{{- else -}}
<img src="{{ .Destination | safeURL }}" alt="{{ .Text }}"{{ with .Title }} title="{{ . }}"{{ end }} loading="lazy">
{{- end -}}
`

func writeLayouts(dir string, unoptimized bool) error {
	tmpl := resizeImageTemplate
	if unoptimized {
		tmpl = passthroughImageTemplate
	}
	return writeFile(filepath.Join(dir, filepath.FromSlash(renderImageHook)), []byte(tmpl))
}
