// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package main

import "github.com/digitalearthafrica/wetland/cmd"

func main() {
	cmd.Execute()
}
