package extraction

import (
	"testing"
)

func TestExtractEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "keeps case", input: "E-mail: Joao.Silva@Empresa.com.br", expect: "Joao.Silva@Empresa.com.br"},
		{name: "first match wins", input: "contato@empresa.com.br e outro@empresa.com.br", expect: "contato@empresa.com.br"},
		{name: "underscore and hyphen", input: "mail maria_souza-dev@my-host.io now", expect: "maria_souza-dev@my-host.io"},
		{name: "no tld", input: "user@localhost", expect: ""},
		{name: "none", input: "sem contato", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractEmail(Normalize(tt.input)); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "mobile with area code", input: "Celular: (11) 99999-9999", expect: "11999999999"},
		{name: "country code dropped", input: "+55 21 98765-4321", expect: "21987654321"},
		{name: "compact international", input: "+5511987654321", expect: "11987654321"},
		{name: "landline", input: "Tel (21) 3456-7890", expect: "2134567890"},
		{name: "no area code", input: "ramal 3456 7890", expect: "34567890"},
		{name: "mobile nine set apart", input: "Celular: (11) 9 9999-9999", expect: "11999999999"},
		{name: "mobile nine set apart without parentheses", input: "Cel 11 9 8765-4321", expect: "11987654321"},
		{name: "first match wins", input: "(11) 3333-4444 ou (21) 98888-7777", expect: "1133334444"},
		{name: "earlier year range is taken for a phone", input: "Acme 2016-2017\n(11) 99999-9999", expect: "20162017"},
		{name: "cpf is not a phone", input: "CPF 123.456.789-00", expect: ""},
		{name: "none", input: "sem telefone", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := extractPhone(Normalize(tt.input))
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
			if len(got) > 11 {
				t.Fatalf("phone longer than 11 digits: %q", got)
			}
		})
	}
}

func TestExtractLinkedIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "bare fragment", input: "linkedin.com/in/joao-silva-123", expect: "https://www.linkedin.com/in/joao-silva-123"},
		{name: "full url mixed case", input: "Perfil: https://www.LinkedIn.com/in/MariaSouza/", expect: "https://www.linkedin.com/in/MariaSouza"},
		{name: "regional subdomain", input: "br.linkedin.com/in/ana-lima", expect: "https://www.linkedin.com/in/ana-lima"},
		{name: "company page", input: "linkedin.com/company/acme", expect: ""},
		{name: "none", input: "github.com/joao", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractLinkedIn(Normalize(tt.input)); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractName(t *testing.T) {
	t.Parallel()

	rules, err := compile(DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "vocabulary excludes header",
			input:  "Curriculum Vitae\nJoão da Silva Santos\njoao@email.com",
			expect: "João da Silva Santos",
		},
		{
			name:   "excluded terms are accent insensitive",
			input:  "CURRÍCULO\nDADOS PESSOAIS\nMaria Eduarda Souza",
			expect: "Maria Eduarda Souza",
		},
		{
			name:   "digits and punctuation rejected",
			input:  "Rua das Flores 123\nSouza, Maria\nMaria Souza",
			expect: "Maria Souza",
		},
		{
			name:   "short lines ignored",
			input:  "Ana\nAna Lima",
			expect: "Ana Lima",
		},
		{
			name:   "email lines rejected",
			input:  "maria@email.com\nMaria Souza",
			expect: "Maria Souza",
		},
		{
			name:   "decomposed accents",
			input:  "Joa\u0303o da Silva\njoao@email.com",
			expect: "João da Silva",
		},
		{
			name:   "no candidate",
			input:  "Objetivo\n(11) 99999-9999",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rules.extractName(Normalize(tt.input)); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestClassifySeniority(t *testing.T) {
	t.Parallel()

	rules, err := compile(DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "senior outranks intern", input: "Fui estagiário de TI e hoje sou especialista em backend", expect: "Senior"},
		{name: "accented senior", input: "Desenvolvedora Sênior", expect: "Senior"},
		{name: "pleno", input: "Analista Pleno", expect: "Pleno"},
		{name: "mid-level", input: "Mid-Level engineer", expect: "Pleno"},
		{name: "pleno outranks intern", input: "estagiario, depois pleno", expect: "Pleno"},
		{name: "intern", input: "Estagiária? não: estagiário em QA", expect: "Intern"},
		{name: "default junior", input: "Primeiro emprego", expect: "Junior"},
		{name: "empty", input: "", expect: "Junior"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rules.classifySeniority(Normalize(tt.input)); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestClassifyRole(t *testing.T) {
	t.Parallel()

	rules, err := compile(DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "fullstack alone", input: "Profissional fullstack com foco em APIs", expect: "Fullstack"},
		{name: "list order beats text order", input: "Atuei como fullstack e antes como frontend", expect: "Frontend"},
		{name: "multi word role", input: "Engenheiro de Software na Acme", expect: "Engenheiro de software"},
		{name: "earliest keyword in list", input: "Product Owner e desenvolvedor", expect: "Desenvolvedor"},
		{name: "none", input: "Contador com experiencia fiscal", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rules.classifyRole(Normalize(tt.input)); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
