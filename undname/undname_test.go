package undname

import (
	"errors"
	"strings"
	"testing"
)

func TestDemangle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"global int", "?x@@3HA", "int x"},
		{"namespaced int", "?x@ns@@3HA", "int ns::x"},
		{"pointer", "?x@@3PEAHEA", "int *x"},
		{"pointer to const", "?x@@3PEBHEB", "int const *x"},
		{"function of void", "?f@@YAHXZ", "int f(void)"},
		{"void function of int", "?g@@YAXH@Z", "void g(int)"},
		{"two parameters", "?h@@YAXHN@Z", "void h(int,double)"},
		{"reference", "?r@@3AEAHEA", "int &r"},
		{"const pointer", "?p@@3QEBHEB", "int const *const p"},
		{"bool", "?b@@3_NA", "bool b"},
		{"long long", "?v@@3_JA", "long long v"},
		{"wchar_t", "?w@@3_WA", "wchar_t w"},
		{"array of arrays", "?x@@3Y124HA", "int x[3][5]"},
		{"array with hex length", "?x@@3Y0BC@DA", "char x[18]"},
		{"const element array", "?a@@3Y01$$CBHA", "int const a[2]"},
		{"pointer to function", "?fp@@3P6AHH@ZEA", "int (*fp)(int)"},
		{"struct parameter backref", "?f@@YAXUA@@0@Z", "void f(struct A,struct A)"},
		{"enum variable", "?e@@3W4E@ns@@A", "enum ns::E e"},
		{"union variable", "?u@@3TU@@A", "union U u"},
		{"name backref", "?x@ns@1@3HA", "int ns::ns::x"},
		{"template member function", "?f@?$C@HN@@QEAAHXZ", "int C<int,double>::f(void)"},
		{"member const function", "?f@C@@QEBAHXZ", "int C::f(void)const"},
		{"constructor", "??0Foo@@QEAA@XZ", "Foo::Foo(void)"},
		{"destructor", "??1Foo@@QEAA@XZ", "Foo::~Foo(void)"},
		{"unmangled passthrough", "main", "main"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Demangle(tt.input)
			if err != nil {
				t.Fatalf("Demangle(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Demangle(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.Contains(got, "  ") {
				t.Errorf("Demangle(%q) = %q contains a doubled space", tt.input, got)
			}
			if strings.Contains(got, " )") || strings.Contains(got, " ]") || strings.Contains(got, " ,") {
				t.Errorf("Demangle(%q) = %q has a space before punctuation", tt.input, got)
			}
		})
	}
}

func TestDemangleErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"bad number", "?a@@3YZZ", ErrBadNumber},
		{"missing terminator", "?x", ErrMissingAt},
		{"name reference too large", "?x@9@3HA", ErrNameRef},
		{"invalid backreference", "?f@@YAX0@Z", ErrBackref},
		{"unknown calling convention", "?f@@YZHXZ", ErrCallConv},
		{"unknown primitive type", "?x@@3LA", ErrPrimType},
		{"invalid array dimension", "?a@@3Y?0AH", ErrArrayDim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Demangle(tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("Demangle(%q) err = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestDemanglerLatchesFirstResult(t *testing.T) {
	d := New("?x@@3HA")
	if err := d.Parse(); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if err := d.Parse(); err != nil {
		t.Fatalf("second Parse error: %v", err)
	}
	if got := d.Str(); got != "int x" {
		t.Fatalf("Str() = %q, want %q", got, "int x")
	}
	if d.Err() != nil {
		t.Fatalf("Err() = %v, want nil", d.Err())
	}
}

func TestDemanglerStrAfterError(t *testing.T) {
	d := New("?x@@3LA")
	if err := d.Parse(); err == nil {
		t.Fatal("Parse succeeded on unknown primitive")
	}
	if got := d.Str(); got != "" {
		t.Fatalf("Str() after failed parse = %q, want empty", got)
	}
}

func TestDemangleSimple(t *testing.T) {
	if got := DemangleSimple("?x@@3HA"); got != "int x" {
		t.Fatalf("DemangleSimple = %q, want %q", got, "int x")
	}
	// Failures fall back to the decorated name.
	if got := DemangleSimple("?x@@3LA"); got != "?x@@3LA" {
		t.Fatalf("DemangleSimple = %q, want the input back", got)
	}
}

func TestIsMangled(t *testing.T) {
	if !IsMangled("?x@@3HA") {
		t.Error("IsMangled(\"?x@@3HA\") = false")
	}
	if IsMangled("main") {
		t.Error("IsMangled(\"main\") = true")
	}
	if IsMangled("") {
		t.Error("IsMangled(\"\") = true")
	}
}
