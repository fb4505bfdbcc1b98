// Package cipher provides the two-stage classical transform (Vigenere
// substitution followed by columnar transposition) and a registry of
// reversible transform operations built on it.
//
// # Quick start
//
// Direct library calls:
//
//	ct, err := cipher.Encode(alphabet.Normalize("attack at dawn"),
//	    alphabet.Normalize("LONGERKEYABC"), alphabet.Normalize("ZEBRA"))
//	pt, err := cipher.Decode(ct,
//	    alphabet.Normalize("LONGERKEYABC"), alphabet.Normalize("ZEBRA"))
//
// Through the operation registry:
//
//	op, _ := cipher.GetOperation("classical_encrypt")
//	out, _ := op.Execute(ctx, []byte("attack at dawn"), map[string]interface{}{
//	    "substitution_key":  "LONGERKEYABC",
//	    "transposition_key": "ZEBRA",
//	})
//
// # Transformation pipelines
//
// Operations chain into pipelines that can be reversed as a unit:
//
//	pipeline := &cipher.Pipeline{
//	    Operations: []cipher.OperationConfig{
//	        {Name: "vigenere_encrypt", Parameters: map[string]interface{}{"key": "LONGERKEYABC"}},
//	        {Name: "columnar_encrypt", Parameters: map[string]interface{}{"key": "ZEBRA"}},
//	    },
//	    Reversible: true,
//	}
//
// # Available operations
//
//   - vigenere_encrypt/decrypt - substitution stage only ("key")
//   - columnar_encrypt/decrypt - transposition stage only ("key")
//   - classical_encrypt/decrypt - both stages ("substitution_key",
//     "transposition_key")
//
// # Thread safety
//
// The operation registry is thread-safe. Individual operations are
// stateless and safe for concurrent use.
package cipher
