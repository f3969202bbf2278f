// Copyright 2025 Ian Lewis
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

package jis

// asciiToJISX0208 maps 0x20-0x7e to full-width JIS X 0208 codes.
var asciiToJISX0208 = [...]uint16{
	// 0x20 -- 0x2f
	0x2121, 0x212a, 0x2149, 0x2174, 0x2170, 0x2173, 0x2175, 0x2147,
	0x214a, 0x214b, 0x2176, 0x215c, 0x2124, 0x215d, 0x2125, 0x213f,
	// 0x30 -- 0x3f
	0x2330, 0x2331, 0x2332, 0x2333, 0x2334, 0x2335, 0x2336, 0x2337,
	0x2338, 0x2339, 0x2127, 0x2128, 0x2163, 0x2161, 0x2164, 0x2129,
	// 0x40 -- 0x4f
	0x2177, 0x2341, 0x2342, 0x2343, 0x2344, 0x2345, 0x2346, 0x2347,
	0x2348, 0x2349, 0x234a, 0x234b, 0x234c, 0x234d, 0x234e, 0x234f,
	// 0x50 -- 0x5f
	0x2350, 0x2351, 0x2352, 0x2353, 0x2354, 0x2355, 0x2356, 0x2357,
	0x2358, 0x2359, 0x235a, 0x214e, 0x2140, 0x214f, 0x2130, 0x2132,
	// 0x60 -- 0x6f
	0x2146, 0x2361, 0x2362, 0x2363, 0x2364, 0x2365, 0x2366, 0x2367,
	0x2368, 0x2369, 0x236a, 0x236b, 0x236c, 0x236d, 0x236e, 0x236f,
	// 0x70 -- 0x7e
	0x2370, 0x2371, 0x2372, 0x2373, 0x2374, 0x2375, 0x2376, 0x2377,
	0x2378, 0x2379, 0x237a, 0x2150, 0x2143, 0x2151, 0x2141,
}

// jisx0201ToJISX0208 maps half-width katakana 0xa0-0xdf to JIS X 0208.
var jisx0201ToJISX0208 = [...]uint16{
	// 0xa0 -- 0xaf
	0x0000, 0x2123, 0x2156, 0x2157, 0x2122, 0x2126, 0x2572, 0x2521,
	0x2523, 0x2525, 0x2527, 0x2529, 0x2563, 0x2565, 0x2567, 0x2543,
	// 0xb0 -- 0xbf
	0x213c, 0x2522, 0x2524, 0x2526, 0x2528, 0x252a, 0x252b, 0x252d,
	0x252f, 0x2531, 0x2533, 0x2535, 0x2537, 0x2539, 0x253b, 0x253d,
	// 0xc0 -- 0xcf
	0x253f, 0x2541, 0x2544, 0x2546, 0x2548, 0x254a, 0x254b, 0x254c,
	0x254d, 0x254e, 0x254f, 0x2552, 0x2555, 0x2558, 0x255b, 0x255e,
	// 0xd0 -- 0xdf
	0x255f, 0x2560, 0x2561, 0x2562, 0x2564, 0x2566, 0x2568, 0x2569,
	0x256a, 0x256b, 0x256c, 0x256d, 0x256f, 0x2573, 0x212b, 0x212c,
}

// longVowel maps the kana low byte 0x21-0x76 to the low byte of the vowel
// that lengthens it.
var longVowel = [...]byte{
	0x22, 0x22, 0x24, 0x24, 0x26, 0x26, 0x28, 0x28, // a A i I u U e E
	0x2a, 0x2a, 0x22, 0x22, 0x24, 0x24, 0x26, 0x26, // o O KA GA KI GI KU GU
	0x28, 0x28, 0x2a, 0x2a, 0x22, 0x22, 0x24, 0x24, // KE GE KO GO SA ZA SI ZI
	0x26, 0x26, 0x28, 0x28, 0x2a, 0x2a, 0x22, 0x22, // SU ZU SE ZE SO ZO TA DA
	0x24, 0x24, 0x26, 0x26, 0x26, 0x28, 0x28, 0x2a, // TI DI tu TU DU TE DE TO
	0x2a, 0x22, 0x24, 0x26, 0x28, 0x2a, 0x22, 0x22, // DO NA NI NU NE NO HA BA
	0x22, 0x24, 0x24, 0x24, 0x26, 0x26, 0x26, 0x28, // PA HI BI PI HU BU PU HE
	0x28, 0x28, 0x2a, 0x2a, 0x2a, 0x22, 0x24, 0x26, // BE PE HO BO PO MA MI MU
	0x28, 0x2a, 0x22, 0x22, 0x26, 0x26, 0x2a, 0x2a, // ME MO ya YA yu YU yo YO
	0x22, 0x24, 0x26, 0x28, 0x2a, 0x22, 0x22, 0x24, // RA RI RU RE RO wa WA WI
	0x28, 0x2a, 0x73, 0x26, 0x22, 0x28, // WE WO N VU ka ke
}

// voicedConsonant maps the kana low byte 0x21-0x76 to the low byte of its
// unvoiced form.
var voicedConsonant = [...]byte{
	0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, // a A i I u U e E
	0x29, 0x2a, 0x2b, 0x2b, 0x2d, 0x2d, 0x2f, 0x2f, // o O KA GA KI GI KU GU
	0x31, 0x31, 0x33, 0x33, 0x35, 0x35, 0x37, 0x37, // KE GE KO GO SA ZA SI ZI
	0x39, 0x39, 0x3b, 0x3b, 0x3d, 0x3d, 0x3f, 0x3f, // SU ZU SE ZE SO ZO TA DA
	0x41, 0x41, 0x43, 0x44, 0x44, 0x46, 0x46, 0x48, // TI DI tu TU DU TE DE TO
	0x48, 0x4a, 0x4b, 0x4c, 0x4d, 0x4e, 0x4f, 0x4f, // DO NA NI NU NE NO HA BA
	0x51, 0x52, 0x52, 0x54, 0x55, 0x55, 0x57, 0x58, // PA HI BI PI HU BU PU HE
	0x58, 0x5a, 0x5b, 0x5b, 0x5d, 0x5e, 0x5f, 0x60, // BE PE HO BO PO MA MI MU
	0x61, 0x62, 0x64, 0x64, 0x66, 0x66, 0x68, 0x68, // ME MO ya YA yu YU yo YO
	0x69, 0x6a, 0x6b, 0x6c, 0x6d, 0x6e, 0x6f, 0x70, // RA RI RU RE RO wa WA WI
	0x71, 0x72, 0x73, 0x26, 0x75, 0x76, // WE WO N VU ka ke
}
