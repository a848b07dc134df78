// Command admintoken prints the argon2id hash for an admin API token,
// ready to paste into ADMIN_TOKEN_HASH.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/odconnect/receive-tracking-order/infrastructure/argon"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: admintoken <token>")
	}

	hash, err := argon.HashToken(os.Args[1], nil)
	if err != nil {
		log.Fatalf("hash token: %v", err)
	}
	fmt.Println(hash)
}
