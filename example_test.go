package secretshare_test

import (
	"fmt"

	"github.com/oarkflow/secretshare"
)

func Example() {
	engine := secretshare.New()

	shares, err := engine.SplitText("launch code", 5, 3)
	if err != nil {
		panic(err)
	}

	// Hand one share to each custodian; any three recover the secret.
	secret, err := engine.ReconstructText([]secretshare.Share{shares[0], shares[2], shares[4]})
	if err != nil {
		panic(err)
	}
	fmt.Println(secret)
	// Output: launch code
}

func ExampleDecodeShare() {
	share, err := secretshare.DecodeShare("2:65,130,7")
	if err != nil {
		panic(err)
	}
	fmt.Println(share.Index, len(share.Values))
	// Output: 2 3
}
