// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

package main

func main() {
	execute()
}
