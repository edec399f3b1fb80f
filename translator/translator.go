package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Result is a translated stage plus the mapping from declared uniform names to
// the names used in the translated code.
type Result struct {
	Code     string
	Uniforms map[string]string
}

// NeedsTranslation reports whether source is WebGL2 ESSL that a desktop GL
// context cannot compile directly.
func NeedsTranslation(source string, gles bool) bool {
	if gles {
		return false
	}
	return versionDirective(source) == "300 es"
}

func versionDirective(source string) string {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, "#version") {
			return ""
		}
		return strings.Join(strings.Fields(strings.TrimPrefix(line, "#version")), " ")
	}
	return ""
}

// Translate converts a WebGL2 stage to the target output format. stage is
// "vertex" or "fragment".
func Translate(source, stage string, gles bool) (*Result, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	outputFormat := gst.OutputFormatGLSL410
	if gles {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Code:     out.Code,
		Uniforms: make(map[string]string, len(out.Variables)),
	}
	for name, v := range out.Variables {
		res.Uniforms[name] = v.MappedName
	}
	return res, nil
}
