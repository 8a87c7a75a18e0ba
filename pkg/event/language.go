/* Copyright 2025 Chronicle Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package event

// language is a supported display language with its locale code
type language struct {
	label string
	code  string
}

var languages = []language{
	{label: "English", code: "en"},
	{label: "简体中文", code: "zh"},
	{label: "Français", code: "fr"},
	{label: "Deutsch", code: "de"},
	{label: "日本語", code: "ja"},
	{label: "한국어", code: "ko"},
}

// Languages returns the labels of the supported languages
func Languages() []string {
	ret := make([]string, 0, len(languages))
	for _, l := range languages {
		ret = append(ret, l.label)
	}

	return ret
}

// LanguageCode returns the locale code for a language label
func LanguageCode(label string) (string, bool) {
	for _, l := range languages {
		if l.label == label {
			return l.code, true
		}
	}

	return "", false
}
