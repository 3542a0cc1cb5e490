// Copyright 2026 go-tensorutils Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main provides a diagnostic tool to print the CPU features and
// lane dispatch level the kernels will run with.
package main

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-tensorutils/lane"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Println()

	fmt.Printf("Lane dispatch level: %s\n", lane.CurrentLevel())
	fmt.Printf("Lane dispatch width: %d bytes\n", lane.CurrentWidth())
	fmt.Printf("Lane dispatch name: %s\n", lane.CurrentName())
	fmt.Println()

	switch runtime.GOARCH {
	case "arm64":
		printARM64Features()
	case "amd64":
		printAMD64Features()
	}
}

func printARM64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
	fmt.Printf("  HasASIMD:   %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  HasFP:      %v (Floating point)\n", cpu.ARM64.HasFP)
	fmt.Printf("  HasASIMDDP: %v (SDOT/UDOT int8 dot product, ARMv8.2-A)\n", cpu.ARM64.HasASIMDDP)
	fmt.Printf("  HasSVE:     %v (Scalable Vector Extension)\n", cpu.ARM64.HasSVE)
	fmt.Printf("  HasSVE2:    %v (SVE2)\n", cpu.ARM64.HasSVE2)
	fmt.Printf("  HasATOMICS: %v (Large System Extensions)\n", cpu.ARM64.HasATOMICS)
}

func printAMD64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
	fmt.Printf("  HasSSE2:    %v\n", cpu.X86.HasSSE2)
	fmt.Printf("  HasSSSE3:   %v (PSIGNB/PMADDUBSW)\n", cpu.X86.HasSSSE3)
	fmt.Printf("  HasSSE41:   %v\n", cpu.X86.HasSSE41)
	fmt.Printf("  HasSSE42:   %v\n", cpu.X86.HasSSE42)
	fmt.Printf("  HasAVX:     %v\n", cpu.X86.HasAVX)
	fmt.Printf("  HasAVX2:    %v\n", cpu.X86.HasAVX2)
	fmt.Printf("  HasAVX512F: %v\n", cpu.X86.HasAVX512F)
	fmt.Printf("  HasAVX512BW: %v\n", cpu.X86.HasAVX512BW)
	fmt.Printf("  HasAVX512VNNI: %v (VPDPBUSD int8 dot product)\n", cpu.X86.HasAVX512VNNI)
}
