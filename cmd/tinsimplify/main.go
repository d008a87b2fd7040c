// Command tinsimplify builds simplified triangulated irregular network
// meshes from regularly sampled height fields.
package main

import "github.com/arl/tinsimplify/cmd/tinsimplify/cmd"

func main() {
	cmd.Execute()
}
