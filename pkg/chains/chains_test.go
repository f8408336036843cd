package chains

import (
	"errors"
	"testing"
)

func TestIDTableRoundTrip(t *testing.T) {
	if err := Verify(); err != nil {
		t.Fatalf("Verify() = %v", err)
	}
	for _, c := range All() {
		if got := FromNumeric(c.NumericID()); got != c {
			t.Errorf("FromNumeric(%q) = %q, want %q", c.NumericID(), got, c)
		}
		if got := FromSlug(c.Slug()); got != c {
			t.Errorf("FromSlug(%q) = %q, want %q", c.Slug(), got, c)
		}
	}
}

func TestUnknownIDsFallBackToEthereum(t *testing.T) {
	if got := FromNumeric("999999"); got != ChainEthereum {
		t.Errorf("FromNumeric unknown = %q, want ethereum", got)
	}
	if got := FromSlug("not-a-chain"); got != ChainEthereum {
		t.Errorf("FromSlug unknown = %q, want ethereum", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Chain
	}{
		{"", ""},
		{"auto", ""},
		{"  AUTO ", ""},
		{"bsc", ChainBSC},
		{"Polygon", ChainPolygon},
		{"56", ChainBSC},
		{"137", ChainPolygon},
		{"matic-mainnet", ChainPolygon},
		{"solana", ChainSolana},
		{"101", ChainSolana},
		{"dogechain", ChainEthereum},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectionOrderIsEVMOnly(t *testing.T) {
	for _, c := range DetectionOrder() {
		if !c.IsEVM() {
			t.Errorf("detection order contains non-EVM chain %q", c)
		}
	}
	if DetectionOrder()[0] != ChainEthereum {
		t.Errorf("detection order must start with ethereum, got %q", DetectionOrder()[0])
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want AddressForm
		err  bool
	}{
		{"evm checksum", "0xdAC17F958D2ee523a2206206994597C13D831ec7", FormEVM, false},
		{"evm lowercase", "0xdac17f958d2ee523a2206206994597c13d831ec7", FormEVM, false},
		{"solana usdc mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", FormSolana, false},
		{"solana token program", "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", FormSolana, false},
		{"too short hex", "0x1234", FormInvalid, true},
		{"base58 with zero", "0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl", FormInvalid, true},
		{"empty", "", FormInvalid, true},
		{"garbage", "hello world", FormInvalid, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := ParseAddress(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("ParseAddress(%q) err = %v, want err = %t", tt.in, err, tt.err)
			}
			if form != tt.want {
				t.Errorf("ParseAddress(%q) = %v, want %v", tt.in, form, tt.want)
			}
			if err != nil && !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("error should wrap ErrInvalidAddress, got %v", err)
			}
		})
	}
}
