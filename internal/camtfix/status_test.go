package camtfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenStatuses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		count int
	}{
		{
			name:  "coded status",
			input: `<Ntry><Amt>1</Amt><Sts><Cd>BOOK</Cd></Sts><BookgDt/></Ntry>`,
			want:  `<Ntry><Amt>1</Amt><Sts>BOOK</Sts><BookgDt/></Ntry>`,
			count: 1,
		},
		{
			name:  "indented coded status",
			input: "<Ntry><Sts>\n  <Cd> PDNG </Cd>\n</Sts></Ntry>",
			want:  `<Ntry><Sts>PDNG</Sts></Ntry>`,
			count: 1,
		},
		{
			name:  "already flat",
			input: `<Ntry><Sts>BOOK</Sts></Ntry>`,
			want:  `<Ntry><Sts>BOOK</Sts></Ntry>`,
		},
		{
			name:  "proprietary status",
			input: `<Ntry><Sts><Prtry>CLEARED</Prtry></Sts></Ntry>`,
			want:  `<Ntry><Sts><Prtry>CLEARED</Prtry></Sts></Ntry>`,
		},
		{
			name:  "empty code",
			input: `<Ntry><Sts><Cd/></Sts></Ntry>`,
			want:  `<Ntry><Sts><Cd/></Sts></Ntry>`,
		},
		{
			name:  "code next to text",
			input: `<Ntry><Sts>x<Cd>BOOK</Cd></Sts></Ntry>`,
			want:  `<Ntry><Sts>x<Cd>BOOK</Cd></Sts></Ntry>`,
		},
		{
			name:  "two codes",
			input: `<Ntry><Sts><Cd>BOOK</Cd><Cd>INFO</Cd></Sts></Ntry>`,
			want:  `<Ntry><Sts><Cd>BOOK</Cd><Cd>INFO</Cd></Sts></Ntry>`,
		},
		{
			name:  "comment is ignored",
			input: `<Ntry><Sts><!-- wise --><Cd>BOOK</Cd></Sts></Ntry>`,
			want:  `<Ntry><Sts>BOOK</Sts></Ntry>`,
			count: 1,
		},
		{
			name:  "prefixed elements",
			input: `<w:Ntry xmlns:w="urn:x"><w:Sts><w:Cd>BOOK</w:Cd></w:Sts></w:Ntry>`,
			want:  `<w:Ntry xmlns:w="urn:x"><w:Sts>BOOK</w:Sts></w:Ntry>`,
			count: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, doc, _ := newTestPass(t, tt.input)

			n := flattenStatuses(p)

			assert.Equal(t, tt.count, n)
			assert.Equal(t, tt.count, p.report.StatusesFlattened)
			assert.Equal(t, tt.want, render(t, doc))
		})
	}
}
