package stack

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/FirebirdSQL/jaybird-sub009/internal/xstring"
)

type recordOptions struct {
	packagePath  bool
	packageName  bool
	structName   bool
	functionName bool
	fileName     bool
	line         bool
	lambdas      bool
}

type recordOption func(opts *recordOptions)

func PackagePath(b bool) recordOption {
	return func(opts *recordOptions) {
		opts.packagePath = b
	}
}

func PackageName(b bool) recordOption {
	return func(opts *recordOptions) {
		opts.packageName = b
	}
}

func StructName(b bool) recordOption {
	return func(opts *recordOptions) {
		opts.structName = b
	}
}

func FunctionName(b bool) recordOption {
	return func(opts *recordOptions) {
		opts.functionName = b
	}
}

func FileName(b bool) recordOption {
	return func(opts *recordOptions) {
		opts.fileName = b
	}
}

func Line(b bool) recordOption {
	return func(opts *recordOptions) {
		opts.line = b
	}
}

func Lambda(b bool) recordOption {
	return func(opts *recordOptions) {
		opts.lambdas = b
	}
}

type Caller interface {
	Record(opts ...recordOption) string
	FunctionID() string
}

var _ Caller = call{}

type call struct {
	function uintptr
	file     string
	line     int
}

// Call captures the caller depth frames above Call itself.
func Call(depth int) (c call) {
	c.function, c.file, c.line, _ = runtime.Caller(depth + 1)

	return c
}

func (c call) Record(opts ...recordOption) string {
	o := recordOptions{
		packagePath:  true,
		packageName:  true,
		structName:   true,
		functionName: true,
		fileName:     true,
		line:         true,
		lambdas:      true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var name string
	if fn := runtime.FuncForPC(c.function); fn != nil {
		name = strings.ReplaceAll(fn.Name(), "[...]", "")
	}
	file := c.file
	if i := strings.LastIndex(file, "/"); i > -1 {
		file = file[i+1:]
	}

	var pkgPath string
	if i := strings.LastIndex(name, "/"); i > -1 {
		pkgPath, name = name[:i], name[i+1:]
	}
	split := strings.Split(name, ".")
	var lambdas []string
	for len(split) > 1 && strings.HasPrefix(split[len(split)-1], "func") {
		lambdas = append([]string{split[len(split)-1]}, lambdas...)
		split = split[:len(split)-1]
	}
	var pkgName, structName, funcName string
	if len(split) > 0 {
		pkgName = split[0]
	}
	if len(split) > 1 {
		funcName = split[len(split)-1]
	}
	if len(split) > 2 {
		structName = strings.Trim(split[1], "(*)")
	}

	buffer := xstring.Buffer()
	defer buffer.Free()
	if o.packagePath {
		buffer.WriteString(pkgPath)
	}
	if o.packageName {
		if buffer.Len() > 0 {
			buffer.WriteByte('/')
		}
		buffer.WriteString(pkgName)
	}
	if o.structName && structName != "" {
		if buffer.Len() > 0 {
			buffer.WriteByte('.')
		}
		buffer.WriteString(structName)
	}
	if o.functionName {
		if buffer.Len() > 0 {
			buffer.WriteByte('.')
		}
		buffer.WriteString(funcName)
		if o.lambdas {
			for _, l := range lambdas {
				buffer.WriteByte('.')
				buffer.WriteString(l)
			}
		}
	}
	if o.fileName {
		closeBrace := buffer.Len() > 0
		if closeBrace {
			buffer.WriteByte('(')
		}
		buffer.WriteString(file)
		if o.line {
			buffer.WriteByte(':')
			buffer.WriteString(strconv.Itoa(c.line))
		}
		if closeBrace {
			buffer.WriteByte(')')
		}
	}

	return buffer.String()
}

func (c call) FunctionID() string {
	return c.Record(Lambda(false), FileName(false))
}

func Record(depth int, opts ...recordOption) string {
	return Call(depth + 1).Record(opts...)
}
