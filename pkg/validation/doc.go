/*
Package validation 설정 파일과 API 요청으로 들어오는 경로, URL 등의 값을 검증하는 함수를 제공합니다.

모든 검증 함수는 유효하지 않은 입력에 대해 원인을 설명하는 error를 반환하며, 스레드 안전합니다.
*/
package validation
